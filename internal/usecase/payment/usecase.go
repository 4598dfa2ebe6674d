package payment

import (
	"context"
	"time"

	"microcredit-coop/internal/domain/apperr"
	"microcredit-coop/internal/domain/member"
	domain "microcredit-coop/internal/domain/payment"
	"microcredit-coop/internal/domain/report"
	"microcredit-coop/internal/domain/uow"

	"github.com/sirupsen/logrus"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork

	cache report.Invalidator
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		repo: r,
		uow:  tx,
		log:  logrus.StandardLogger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
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

// ListMine returns the actor's installments by due date. Pending
// installments past due read as overdue even before the sweep runs.
func (u *Usecase) ListMine(ctx context.Context, actor member.Actor) ([]PaymentDTO, error) {
	ps, err := u.repo.ListByMember(ctx, actor.MemberID)
	if err != nil {
		return nil, apperr.Persistence("list payments", err)
	}
	now := u.now()
	out := make([]PaymentDTO, 0, len(ps))
	for i := range ps {
		out = append(out, toDTO(&ps[i], now))
	}
	return out, nil
}

// MarkPaid settles one installment. Only the borrower may pay; paid is terminal.
func (u *Usecase) MarkPaid(ctx context.Context, actor member.Actor, paymentID string) (*PaymentDTO, error) {
	var dto PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentID(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.MemberID != actor.MemberID {
			return domain.ErrNotOwner
		}
		if p.Status == domain.StatusPaid {
			return domain.ErrAlreadyPaid
		}
		at := u.now()
		p.Status = domain.StatusPaid
		p.PaidAt = &at
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p, at)
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap("mark paid", err, domain.ErrNotFound, domain.ErrNotOwner, domain.ErrAlreadyPaid)
	}

	u.log.WithFields(logrus.Fields{"payment_id": paymentID, "member_id": actor.MemberID}).Info("payment recorded")
	if u.cache != nil {
		if err := u.cache.Invalidate(ctx); err != nil {
			u.log.WithError(err).Warn("report cache invalidation failed")
		}
	}
	return &dto, nil
}

// SweepOverdue flips pending installments due before today to overdue.
func (u *Usecase) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	n, err := u.repo.MarkOverdue(ctx, now)
	if err != nil {
		return 0, apperr.Persistence("mark overdue", err)
	}
	if n > 0 {
		u.log.WithField("count", n).Info("payments marked overdue")
		if u.cache != nil {
			if err := u.cache.Invalidate(ctx); err != nil {
				u.log.WithError(err).Warn("report cache invalidation failed")
			}
		}
	}
	return n, nil
}

func toDTO(p *domain.Payment, now time.Time) PaymentDTO {
	return PaymentDTO{
		PaymentID:   p.PaymentID,
		Installment: p.Installment,
		Amount:      p.Amount,
		DueDate:     p.DueDate.UTC().Format(time.DateOnly),
		Status:      string(p.Effective(now)),
		PaidAt:      p.PaidAt,
	}
}
