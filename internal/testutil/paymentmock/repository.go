package paymentmock

import (
	"context"
	"time"

	domain "microcredit-coop/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateBatchFn    func(ctx context.Context, ps []domain.Payment) error
	SaveFn           func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn func(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListByMemberFn   func(ctx context.Context, memberID string) ([]domain.Payment, error)
	ListByRequestFn  func(ctx context.Context, requestNumericID uint64) ([]domain.Payment, error)
	MarkOverdueFn    func(ctx context.Context, before time.Time) (int64, error)
}

func (m *Repo) CreateBatch(ctx context.Context, ps []domain.Payment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, ps)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByMember(ctx context.Context, memberID string) ([]domain.Payment, error) {
	if m.ListByMemberFn != nil {
		return m.ListByMemberFn(ctx, memberID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByRequest(ctx context.Context, requestNumericID uint64) ([]domain.Payment, error) {
	if m.ListByRequestFn != nil {
		return m.ListByRequestFn(ctx, requestNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	if m.MarkOverdueFn != nil {
		return m.MarkOverdueFn(ctx, before)
	}
	return 0, context.Canceled
}
