package payment

import (
	"context"
	"time"
)

type Repository interface {
	CreateBatch(ctx context.Context, ps []Payment) error
	Save(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	ListByMember(ctx context.Context, memberID string) ([]Payment, error)
	ListByRequest(ctx context.Context, requestNumericID uint64) ([]Payment, error)
	// MarkOverdue flips pending payments due before the given day.
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
}
