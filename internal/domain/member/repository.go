package member

import "context"

type Repository interface {
	GetByMemberID(ctx context.Context, memberID string) (*Member, error)
	// Upsert inserts or updates by member_id.
	Upsert(ctx context.Context, m *Member) error
	ListByGroup(ctx context.Context, groupID string) ([]Member, error)
	CountByGroup(ctx context.Context, groupID string) (int64, error)
}
