package vote

import "context"

type Repository interface {
	// Create returns ErrDuplicateVote when (request, voter) already exists.
	Create(ctx context.Context, v *Vote) error
	ListByRequest(ctx context.Context, requestNumericID uint64) ([]Vote, error)
}
