package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("payment not found")
	ErrAlreadyPaid = errors.New("payment already paid")
	ErrNotOwner    = errors.New("payment belongs to another member")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Table: payments
type Payment struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PaymentID string `gorm:"column:payment_id;size:32;not null;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	// FK to loan_requests.id (numeric)
	RequestID   uint64          `gorm:"column:request_id;not null;uniqueIndex:ux_payments_request_installment,priority:1" json:"-"`
	Installment int             `gorm:"column:installment;not null;uniqueIndex:ux_payments_request_installment,priority:2" json:"installment"`
	MemberID    string          `gorm:"column:member_id;size:32;not null;index:idx_payments_member" json:"member_id"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	DueDate     time.Time       `gorm:"column:due_date;type:date;not null;index:idx_payments_due" json:"due_date"`
	Status      Status          `gorm:"column:status;size:16;not null;default:'pending';index:idx_payments_status" json:"status"`
	PaidAt      *time.Time      `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
