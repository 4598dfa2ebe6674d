package request

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("request not found")
	ErrOpenRequestExists = errors.New("member already has an open request")
	ErrVotingClosed      = errors.New("request voting is closed")
	ErrInvalid           = errors.New("invalid loan request")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVoting   Status = "voting"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Final reports whether the group has already decided the request.
func (s Status) Final() bool { return s == StatusApproved || s == StatusRejected }

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusVoting, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Category string

const (
	CategoryBusiness    Category = "business"
	CategoryEducation   Category = "education"
	CategoryHealth      Category = "health"
	CategoryHousing     Category = "housing"
	CategoryTransport   Category = "transport"
	CategoryAgriculture Category = "agriculture"
	CategoryEmergency   Category = "emergency"
	CategoryOther       Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBusiness, CategoryEducation, CategoryHealth, CategoryHousing,
		CategoryTransport, CategoryAgriculture, CategoryEmergency, CategoryOther:
		return true
	}
	return false
}

// Amount bounds and terms offered to members.
var (
	MinAmount = decimal.NewFromInt(50)
	MaxAmount = decimal.NewFromInt(5000)
	Terms     = []int{1, 3, 6, 12}
)

// Table: loan_requests
type LoanRequest struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	RequestID     string          `gorm:"column:request_id;size:32;not null;uniqueIndex:ux_loan_requests_request_id" json:"request_id"`
	RequesterID   string          `gorm:"column:requester_id;size:32;not null;index:idx_loan_requests_requester" json:"requester_id"`
	GroupID       string          `gorm:"column:group_id;size:32;not null;index:idx_loan_requests_group" json:"group_id"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Category      Category        `gorm:"column:category;size:32;not null" json:"category"`
	Purpose       string          `gorm:"column:purpose;size:100;not null" json:"purpose"`
	Description   *string         `gorm:"column:description;type:text" json:"description,omitempty"`
	TermMonths    int             `gorm:"column:term_months;not null" json:"term_months"`
	Status        Status          `gorm:"column:status;size:16;not null;default:'pending';index:idx_loan_requests_status" json:"status"`
	VotesPositive int             `gorm:"column:votes_positive;not null;default:0" json:"votes_positive"`
	VotesTotal    int             `gorm:"column:votes_total;not null;default:0" json:"votes_total"`
	DecidedAt     *time.Time      `gorm:"column:decided_at" json:"decided_at,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime;index:idx_loan_requests_created" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LoanRequest) TableName() string { return "loan_requests" }

// VotesNegative is derived; only positive and total are stored.
func (r *LoanRequest) VotesNegative() int { return r.VotesTotal - r.VotesPositive }

// MonthlyInstallment previews amount/term rounded to cents.
func MonthlyInstallment(amount decimal.Decimal, term int) decimal.Decimal {
	if term <= 0 {
		return decimal.Zero
	}
	return amount.Div(decimal.NewFromInt(int64(term))).Round(2)
}

// ValidTerm reports whether term is one of the offered terms.
func ValidTerm(term int) bool { return slices.Contains(Terms, term) }

// ValidAmount checks the bounds and that amount has at most two decimals.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(MinAmount) &&
		amount.LessThanOrEqual(MaxAmount) &&
		amount.Equal(amount.Truncate(2))
}

// Validate checks the fields a member supplies on submission.
func (r *LoanRequest) Validate() error {
	switch {
	case !ValidAmount(r.Amount):
		return fmt.Errorf("%w: amount must be between %s and %s with at most 2 decimals", ErrInvalid, MinAmount, MaxAmount)
	case !r.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, r.Category)
	case r.Purpose == "" || len([]rune(r.Purpose)) > 100:
		return fmt.Errorf("%w: purpose is required and limited to 100 characters", ErrInvalid)
	case r.Description != nil && len([]rune(*r.Description)) > 500:
		return fmt.Errorf("%w: description is limited to 500 characters", ErrInvalid)
	case !ValidTerm(r.TermMonths):
		return fmt.Errorf("%w: term must be one of %v months", ErrInvalid, Terms)
	}
	return nil
}
