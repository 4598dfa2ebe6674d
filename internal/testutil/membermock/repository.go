package membermock

import (
	"context"

	domain "microcredit-coop/internal/domain/member"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetByMemberIDFn func(ctx context.Context, memberID string) (*domain.Member, error)
	UpsertFn        func(ctx context.Context, m *domain.Member) error
	ListByGroupFn   func(ctx context.Context, groupID string) ([]domain.Member, error)
	CountByGroupFn  func(ctx context.Context, groupID string) (int64, error)
}

// InGroup returns a Repo whose GetByMemberID resolves any id to a member of groupID.
func InGroup(groupID string) *Repo {
	return &Repo{
		GetByMemberIDFn: func(_ context.Context, memberID string) (*domain.Member, error) {
			g := groupID
			return &domain.Member{MemberID: memberID, Role: domain.RoleMember, GroupID: &g}, nil
		},
	}
}

func (m *Repo) GetByMemberID(ctx context.Context, memberID string) (*domain.Member, error) {
	if m.GetByMemberIDFn != nil {
		return m.GetByMemberIDFn(ctx, memberID)
	}
	return nil, context.Canceled
}

func (m *Repo) Upsert(ctx context.Context, mem *domain.Member) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, mem)
	}
	return nil
}

func (m *Repo) ListByGroup(ctx context.Context, groupID string) ([]domain.Member, error) {
	if m.ListByGroupFn != nil {
		return m.ListByGroupFn(ctx, groupID)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByGroup(ctx context.Context, groupID string) (int64, error) {
	if m.CountByGroupFn != nil {
		return m.CountByGroupFn(ctx, groupID)
	}
	return 0, context.Canceled
}
