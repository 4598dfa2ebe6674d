package report

import (
	"time"

	"github.com/shopspring/decimal"
)

type SummaryInput struct {
	GroupID string
	From    time.Time
	To      time.Time
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

type SummaryDTO struct {
	GroupID       string          `json:"group_id,omitempty"`
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Requested     int64           `json:"requested"`
	Approved      int64           `json:"approved"`
	Rejected      int64           `json:"rejected"`
	AmountLent    decimal.Decimal `json:"amount_lent"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	AmountPending decimal.Decimal `json:"amount_pending"`
	VotesPositive int64           `json:"votes_positive"`
	VotesNegative int64           `json:"votes_negative"`
	Monthly       []MonthCount    `json:"monthly"`
}
