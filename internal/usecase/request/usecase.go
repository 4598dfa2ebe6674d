package request

import (
	"context"
	"errors"
	"fmt"

	"microcredit-coop/internal/domain/apperr"
	"microcredit-coop/internal/domain/event"
	"microcredit-coop/internal/domain/member"
	"microcredit-coop/internal/domain/report"
	domain "microcredit-coop/internal/domain/request"
	"microcredit-coop/pkg/id"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Usecase struct {
	repo    domain.Repository
	members member.Repository

	events event.Publisher
	cache  report.Invalidator
	log    logrus.FieldLogger
}

func NewUsecase(r domain.Repository, members member.Repository) *Usecase {
	return &Usecase{repo: r, members: members, events: event.Noop{}, log: logrus.StandardLogger()}
}

func (u *Usecase) WithEvents(p event.Publisher) *Usecase {
	u.events = p
	return u
}

func (u *Usecase) WithCache(c report.Invalidator) *Usecase {
	u.cache = c
	return u
}

func (u *Usecase) WithLogger(l logrus.FieldLogger) *Usecase {
	u.log = l
	return u
}

// Submit files a new request in the requester's current group.
func (u *Usecase) Submit(ctx context.Context, actor member.Actor, in SubmitInput) (*RequestDTO, error) {
	lr := &domain.LoanRequest{
		RequestID:   id.NewID32(),
		RequesterID: actor.MemberID,
		Amount:      in.Amount,
		Category:    domain.Category(in.Category),
		Purpose:     in.Purpose,
		Description: in.Description,
		TermMonths:  in.TermMonths,
		Status:      domain.StatusPending,
	}
	if err := lr.Validate(); err != nil {
		return nil, err
	}

	m, err := u.members.GetByMemberID(ctx, actor.MemberID)
	switch {
	case errors.Is(err, member.ErrNotFound):
		return nil, member.ErrNoGroup
	case err != nil:
		return nil, apperr.Persistence("get member", err)
	case m.GroupID == nil || *m.GroupID == "":
		return nil, member.ErrNoGroup
	}

	// Block if the member already has a request under vote.
	open, err := u.repo.GetOpenByRequesterID(ctx, actor.MemberID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", domain.ErrOpenRequestExists, open.RequestID)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, apperr.Persistence("get open request", err)
	}

	lr.GroupID = *m.GroupID
	if err := u.repo.Create(ctx, lr); err != nil {
		return nil, apperr.Persistence("create request", err)
	}

	dto := toDTO(lr)
	l := u.log.WithFields(logrus.Fields{"request_id": lr.RequestID, "requester_id": lr.RequesterID})
	l.Info("request submitted")
	if err := u.events.Publish(ctx, event.New(event.TypeRequestSubmitted, lr.RequestID, dto)); err != nil {
		l.WithError(err).Warn("publish request.submitted failed")
	}
	if u.cache != nil {
		if err := u.cache.Invalidate(ctx); err != nil {
			l.WithError(err).Warn("report cache invalidation failed")
		}
	}
	return &dto, nil
}

// Get is open to the requester and to members of the request's group.
func (u *Usecase) Get(ctx context.Context, actor member.Actor, requestID string) (*RequestDTO, error) {
	lr, err := u.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, apperr.Wrap("get request", err, domain.ErrNotFound)
	}
	if lr.RequesterID != actor.MemberID {
		if err := u.requireGroup(ctx, actor, lr.GroupID); err != nil {
			return nil, err
		}
	}
	dto := toDTO(lr)
	return &dto, nil
}

func (u *Usecase) ListMine(ctx context.Context, actor member.Actor) ([]RequestDTO, error) {
	rs, err := u.repo.ListByRequester(ctx, actor.MemberID)
	if err != nil {
		return nil, apperr.Persistence("list requests", err)
	}
	return toDTOs(rs), nil
}

// ListGroup lists a group's requests, optionally narrowed to one status.
func (u *Usecase) ListGroup(ctx context.Context, actor member.Actor, groupID, status string) ([]RequestDTO, error) {
	st := domain.Status(status)
	if status != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalid, status)
	}
	if err := u.requireGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	rs, err := u.repo.ListByGroup(ctx, groupID, st)
	if err != nil {
		return nil, apperr.Persistence("list group requests", err)
	}
	return toDTOs(rs), nil
}

// Quote previews the monthly installment for an amount and term.
func (u *Usecase) Quote(amount decimal.Decimal, term int) (*QuoteDTO, error) {
	if !domain.ValidAmount(amount) {
		return nil, fmt.Errorf("%w: amount must be between %s and %s", domain.ErrInvalid, domain.MinAmount, domain.MaxAmount)
	}
	if !domain.ValidTerm(term) {
		return nil, fmt.Errorf("%w: term must be one of %v months", domain.ErrInvalid, domain.Terms)
	}
	return &QuoteDTO{
		Amount:             amount,
		TermMonths:         term,
		MonthlyInstallment: domain.MonthlyInstallment(amount, term),
	}, nil
}

func (u *Usecase) requireGroup(ctx context.Context, actor member.Actor, groupID string) error {
	m, err := u.members.GetByMemberID(ctx, actor.MemberID)
	switch {
	case errors.Is(err, member.ErrNotFound):
		return member.ErrNotGroupMember
	case err != nil:
		return apperr.Persistence("get member", err)
	case !m.InGroup(groupID):
		return member.ErrNotGroupMember
	}
	return nil
}

func toDTOs(rs []domain.LoanRequest) []RequestDTO {
	out := make([]RequestDTO, 0, len(rs))
	for i := range rs {
		out = append(out, toDTO(&rs[i]))
	}
	return out
}
