package request

import "context"

type Repository interface {
	Create(ctx context.Context, r *LoanRequest) error
	Save(ctx context.Context, r *LoanRequest) error

	GetByRequestID(ctx context.Context, requestID string) (*LoanRequest, error)
	// Row-locking read; only meaningful inside a transaction.
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*LoanRequest, error)
	// Latest pending or voting request of a member.
	GetOpenByRequesterID(ctx context.Context, requesterID string) (*LoanRequest, error)

	ListByRequester(ctx context.Context, requesterID string) ([]LoanRequest, error)
	// Empty status lists every request of the group.
	ListByGroup(ctx context.Context, groupID string, status Status) ([]LoanRequest, error)
}
