package sqldb

import (
	"context"

	voteDomain "microcredit-coop/internal/domain/vote"

	"gorm.io/gorm"
)

type VoteRepository struct{ db *gorm.DB }

func NewVoteRepository(db *gorm.DB) *VoteRepository { return &VoteRepository{db: db} }

// Create relies on ux_votes_request_voter; no existence read precedes it.
func (r *VoteRepository) Create(ctx context.Context, v *voteDomain.Vote) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return voteDomain.ErrDuplicateVote
		}
		return err
	}
	return nil
}

func (r *VoteRepository) ListByRequest(ctx context.Context, requestNumericID uint64) ([]voteDomain.Vote, error) {
	var out []voteDomain.Vote
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestNumericID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
