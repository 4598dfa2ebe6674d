package uow

import (
	"context"

	"microcredit-coop/internal/domain/member"
	"microcredit-coop/internal/domain/payment"
	"microcredit-coop/internal/domain/request"
	"microcredit-coop/internal/domain/vote"
)

// Repos are bound to the same transaction.
type Repos struct {
	Requests request.Repository
	Votes    vote.Repository
	Payments payment.Repository
	Members  member.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the request row first, then pass it in
	WithinRequestTx(ctx context.Context, requestID string, fn func(r Repos, lr *request.LoanRequest) error) error
}
