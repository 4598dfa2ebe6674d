package request

import (
	"time"

	domain "microcredit-coop/internal/domain/request"

	"github.com/shopspring/decimal"
)

type SubmitInput struct {
	Amount      decimal.Decimal
	Category    string
	Purpose     string
	Description *string
	TermMonths  int
}

type RequestDTO struct {
	RequestID          string          `json:"request_id"`
	RequesterID        string          `json:"requester_id"`
	GroupID            string          `json:"group_id"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category"`
	Purpose            string          `json:"purpose"`
	Description        *string         `json:"description,omitempty"`
	TermMonths         int             `json:"term_months"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	Status             string          `json:"status"`
	VotesPositive      int             `json:"votes_positive"`
	VotesNegative      int             `json:"votes_negative"`
	VotesTotal         int             `json:"votes_total"`
	DecidedAt          *time.Time      `json:"decided_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

type QuoteDTO struct {
	Amount             decimal.Decimal `json:"amount"`
	TermMonths         int             `json:"term_months"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
}

func toDTO(r *domain.LoanRequest) RequestDTO {
	return RequestDTO{
		RequestID:          r.RequestID,
		RequesterID:        r.RequesterID,
		GroupID:            r.GroupID,
		Amount:             r.Amount,
		Category:           string(r.Category),
		Purpose:            r.Purpose,
		Description:        r.Description,
		TermMonths:         r.TermMonths,
		MonthlyInstallment: domain.MonthlyInstallment(r.Amount, r.TermMonths),
		Status:             string(r.Status),
		VotesPositive:      r.VotesPositive,
		VotesNegative:      r.VotesNegative(),
		VotesTotal:         r.VotesTotal,
		DecidedAt:          r.DecidedAt,
		CreatedAt:          r.CreatedAt,
	}
}
