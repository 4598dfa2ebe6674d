package vote

import (
	"context"
	"errors"
	"time"

	"microcredit-coop/internal/domain/apperr"
	"microcredit-coop/internal/domain/event"
	"microcredit-coop/internal/domain/member"
	"microcredit-coop/internal/domain/payment"
	"microcredit-coop/internal/domain/report"
	"microcredit-coop/internal/domain/request"
	"microcredit-coop/internal/domain/tally"
	"microcredit-coop/internal/domain/uow"
	domainVote "microcredit-coop/internal/domain/vote"

	"github.com/sirupsen/logrus"
)

// errors handed back to the caller as-is; anything else is a store failure
var known = []error{
	request.ErrNotFound,
	request.ErrVotingClosed,
	domainVote.ErrSelfVote,
	domainVote.ErrDuplicateVote,
	member.ErrNotGroupMember,
	tally.ErrInvalidPolicy,
}

type Usecase struct {
	repos  uow.Repos
	uow    uow.UnitOfWork
	policy Policy

	events event.Publisher
	cache  report.Invalidator
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewUsecase: repos serve reads, the UoW serves the cast transaction.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, p Policy) *Usecase {
	return &Usecase{
		repos:  repos,
		uow:    tx,
		policy: p,
		events: event.Noop{},
		log:    logrus.StandardLogger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
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

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Cast records one vote and applies the tally. Vote insert, counter update
// and payment schedule share one transaction on the locked request row.
func (u *Usecase) Cast(ctx context.Context, actor member.Actor, requestID string, approve bool) (*VoteResult, error) {
	if err := u.policy.Rule.Validate(); err != nil {
		return nil, err
	}

	var (
		res     *VoteResult
		decided *request.LoanRequest
	)
	err := u.uow.WithinRequestTx(ctx, requestID, func(r uow.Repos, lr *request.LoanRequest) error {
		if lr.RequesterID == actor.MemberID {
			return domainVote.ErrSelfVote
		}

		voter, err := r.Members.GetByMemberID(ctx, actor.MemberID)
		switch {
		case errors.Is(err, member.ErrNotFound):
			return member.ErrNotGroupMember
		case err != nil:
			return err
		case !voter.InGroup(lr.GroupID):
			return member.ErrNotGroupMember
		}

		if lr.Status.Final() {
			return request.ErrVotingClosed
		}

		rule, err := u.ruleFor(ctx, r.Members, lr.GroupID)
		if err != nil {
			return err
		}

		// the unique key is the authority on duplicates
		if err := r.Votes.Create(ctx, &domainVote.Vote{
			RequestID: lr.ID,
			VoterID:   actor.MemberID,
			Approve:   approve,
		}); err != nil {
			return err
		}

		out, err := tally.Apply(tally.Snapshot{
			Positive: lr.VotesPositive,
			Total:    lr.VotesTotal,
			Status:   lr.Status,
		}, approve, rule)
		if err != nil {
			return err
		}

		lr.VotesPositive, lr.VotesTotal, lr.Status = out.Positive, out.Total, out.Status
		res = &VoteResult{
			RequestID:       lr.RequestID,
			VoterID:         actor.MemberID,
			Approve:         approve,
			VotesPositive:   out.Positive,
			VotesNegative:   out.Total - out.Positive,
			VotesTotal:      out.Total,
			Status:          string(out.Status),
			Decided:         out.Decided,
			Quorum:          rule.Quorum,
			ApprovalsNeeded: rule.Approvals,
		}

		if out.Decided {
			at := u.now()
			lr.DecidedAt = &at
			if out.Status == request.StatusApproved {
				plan := payment.Plan(lr.ID, lr.RequesterID, lr.Amount, lr.TermMonths, at)
				if err := r.Payments.CreateBatch(ctx, plan); err != nil {
					return err
				}
				res.PaymentsCreated = len(plan)
			}
			decided = lr
		}
		return r.Requests.Save(ctx, lr)
	})
	if err != nil {
		return nil, apperr.Wrap("cast vote", err, known...)
	}

	u.afterCast(ctx, res, decided)
	return res, nil
}

func (u *Usecase) ruleFor(ctx context.Context, members member.Repository, groupID string) (tally.Policy, error) {
	if !u.policy.ScaleToGroup {
		return u.policy.Rule, nil
	}
	n, err := members.CountByGroup(ctx, groupID)
	if err != nil {
		return tally.Policy{}, err
	}
	return u.policy.Rule.ForGroup(int(n) - 1), nil
}

// afterCast runs once the transaction committed; failures are logged only.
func (u *Usecase) afterCast(ctx context.Context, res *VoteResult, decided *request.LoanRequest) {
	l := u.log.WithFields(logrus.Fields{"request_id": res.RequestID, "voter_id": res.VoterID})

	if err := u.events.Publish(ctx, event.New(event.TypeVoteCast, res.RequestID, res)); err != nil {
		l.WithError(err).Warn("publish vote.cast failed")
	}
	if decided != nil {
		l.WithField("status", decided.Status).Info("request decided")
		if err := u.events.Publish(ctx, event.New(event.TypeRequestDecided, decided.RequestID, decided)); err != nil {
			l.WithError(err).Warn("publish request.decided failed")
		}
	}
	if u.cache != nil {
		if err := u.cache.Invalidate(ctx); err != nil {
			l.WithError(err).Warn("report cache invalidation failed")
		}
	}
}

// List returns the votes on a request, oldest first. Only the requester and
// members of the request's group may read them.
func (u *Usecase) List(ctx context.Context, actor member.Actor, requestID string) ([]VoteDTO, error) {
	lr, err := u.repos.Requests.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, apperr.Wrap("get request", err, request.ErrNotFound)
	}
	if lr.RequesterID != actor.MemberID {
		m, err := u.repos.Members.GetByMemberID(ctx, actor.MemberID)
		switch {
		case errors.Is(err, member.ErrNotFound):
			return nil, member.ErrNotGroupMember
		case err != nil:
			return nil, apperr.Persistence("get member", err)
		case !m.InGroup(lr.GroupID):
			return nil, member.ErrNotGroupMember
		}
	}

	vs, err := u.repos.Votes.ListByRequest(ctx, lr.ID)
	if err != nil {
		return nil, apperr.Persistence("list votes", err)
	}
	out := make([]VoteDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, VoteDTO{VoterID: v.VoterID, Approve: v.Approve, CreatedAt: v.CreatedAt})
	}
	return out, nil
}
