package requestmock

import (
	"context"

	domain "microcredit-coop/internal/domain/request"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a no-op; reads default to context.Canceled.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.LoanRequest) error
	SaveFn                    func(ctx context.Context, r *domain.LoanRequest) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.LoanRequest, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.LoanRequest, error)
	GetOpenByRequesterIDFn    func(ctx context.Context, requesterID string) (*domain.LoanRequest, error)
	ListByRequesterFn         func(ctx context.Context, requesterID string) ([]domain.LoanRequest, error)
	ListByGroupFn             func(ctx context.Context, groupID string, status domain.Status) ([]domain.LoanRequest, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.LoanRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.LoanRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.LoanRequest, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.LoanRequest, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetOpenByRequesterID(ctx context.Context, requesterID string) (*domain.LoanRequest, error) {
	if m.GetOpenByRequesterIDFn != nil {
		return m.GetOpenByRequesterIDFn(ctx, requesterID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByRequester(ctx context.Context, requesterID string) ([]domain.LoanRequest, error) {
	if m.ListByRequesterFn != nil {
		return m.ListByRequesterFn(ctx, requesterID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByGroup(ctx context.Context, groupID string, status domain.Status) ([]domain.LoanRequest, error) {
	if m.ListByGroupFn != nil {
		return m.ListByGroupFn(ctx, groupID, status)
	}
	return nil, context.Canceled
}
