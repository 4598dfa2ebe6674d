package votemock

import (
	"context"

	domain "microcredit-coop/internal/domain/vote"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, v *domain.Vote) error
	ListByRequestFn func(ctx context.Context, requestNumericID uint64) ([]domain.Vote, error)
}

func (m *Repo) Create(ctx context.Context, v *domain.Vote) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) ListByRequest(ctx context.Context, requestNumericID uint64) ([]domain.Vote, error) {
	if m.ListByRequestFn != nil {
		return m.ListByRequestFn(ctx, requestNumericID)
	}
	return nil, context.Canceled
}
