package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentDTO struct {
	PaymentID   string          `json:"payment_id"`
	Installment int             `json:"installment"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"` // YYYY-MM-DD
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
}
