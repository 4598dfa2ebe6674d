package sqldb

import (
	"context"
	"time"

	paymentDomain "microcredit-coop/internal/domain/payment"
	reportDomain "microcredit-coop/internal/domain/report"
	requestDomain "microcredit-coop/internal/domain/request"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

// scoped filters loan_requests (aliased lr) by creation window and group.
func scoped(q *gorm.DB, f reportDomain.Filter) *gorm.DB {
	q = q.Where("lr.created_at >= ? AND lr.created_at <= ?", f.From.UTC(), f.To.UTC())
	if f.GroupID != "" {
		q = q.Where("lr.group_id = ?", f.GroupID)
	}
	return q
}

func (r *ReportRepository) Totals(ctx context.Context, f reportDomain.Filter) (*reportDomain.Totals, error) {
	db := r.db.WithContext(ctx)

	var reqRow struct {
		Requested int64
		Approved  int64
		Rejected  int64
		Lent      decimal.Decimal
	}
	err := scoped(db.Table("loan_requests AS lr"), f).
		Select(`COUNT(*) AS requested,
			COALESCE(SUM(CASE WHEN lr.status = ? THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN lr.status = ? THEN 1 ELSE 0 END), 0) AS rejected,
			COALESCE(SUM(CASE WHEN lr.status = ? THEN lr.amount ELSE 0 END), 0) AS lent`,
			requestDomain.StatusApproved, requestDomain.StatusRejected, requestDomain.StatusApproved).
		Scan(&reqRow).Error
	if err != nil {
		return nil, err
	}

	var paidRow struct{ Paid decimal.Decimal }
	err = scoped(db.Table("payments AS p").Joins("JOIN loan_requests AS lr ON lr.id = p.request_id"), f).
		Where("p.status = ?", paymentDomain.StatusPaid).
		Select("COALESCE(SUM(p.amount), 0) AS paid").
		Scan(&paidRow).Error
	if err != nil {
		return nil, err
	}

	var voteRow struct {
		Positive int64
		Negative int64
	}
	err = scoped(db.Table("votes AS v").Joins("JOIN loan_requests AS lr ON lr.id = v.request_id"), f).
		Select(`COALESCE(SUM(CASE WHEN v.approve = ? THEN 1 ELSE 0 END), 0) AS positive,
			COALESCE(SUM(CASE WHEN v.approve = ? THEN 1 ELSE 0 END), 0) AS negative`, true, false).
		Scan(&voteRow).Error
	if err != nil {
		return nil, err
	}

	return &reportDomain.Totals{
		Requested:     reqRow.Requested,
		Approved:      reqRow.Approved,
		Rejected:      reqRow.Rejected,
		AmountLent:    reqRow.Lent,
		AmountPaid:    paidRow.Paid,
		VotesPositive: voteRow.Positive,
		VotesNegative: voteRow.Negative,
	}, nil
}

func (r *ReportRepository) RequestDates(ctx context.Context, f reportDomain.Filter) ([]time.Time, error) {
	var out []time.Time
	err := scoped(r.db.WithContext(ctx).Table("loan_requests AS lr"), f).
		Order("lr.created_at ASC").
		Pluck("lr.created_at", &out).Error
	return out, err
}
