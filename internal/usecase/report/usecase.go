package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"microcredit-coop/internal/domain/apperr"
	domain "microcredit-coop/internal/domain/report"

	"github.com/sirupsen/logrus"
)

// DefaultWindowMonths is the look-back when no range is given.
const DefaultWindowMonths = 6

// Cache stores encoded summaries. Load reports a miss with ok=false.
type Cache interface {
	Load(ctx context.Context, key string) (b []byte, ok bool, err error)
	Store(ctx context.Context, key string, b []byte) error
}

type Usecase struct {
	repo  domain.Repository
	cache Cache
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewUsecase(r domain.Repository) *Usecase {
	return &Usecase{
		repo: r,
		log:  logrus.StandardLogger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) WithCache(c Cache) *Usecase {
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

// Summary aggregates activity in [From, To]. Cache failures fall back to
// the store.
func (u *Usecase) Summary(ctx context.Context, in SummaryInput) (*SummaryDTO, error) {
	f, err := u.window(in)
	if err != nil {
		return nil, err
	}
	key := cacheKey(f)
	l := u.log.WithField("cache_key", key)

	if u.cache != nil {
		b, ok, err := u.cache.Load(ctx, key)
		switch {
		case err != nil:
			l.WithError(err).Warn("report cache read failed")
		case ok:
			var dto SummaryDTO
			if err := json.Unmarshal(b, &dto); err == nil {
				return &dto, nil
			}
			l.Warn("report cache entry undecodable, recomputing")
		}
	}

	tot, err := u.repo.Totals(ctx, f)
	if err != nil {
		return nil, apperr.Persistence("report totals", err)
	}
	dates, err := u.repo.RequestDates(ctx, f)
	if err != nil {
		return nil, apperr.Persistence("report dates", err)
	}

	dto := &SummaryDTO{
		GroupID:       f.GroupID,
		From:          f.From,
		To:            f.To,
		Requested:     tot.Requested,
		Approved:      tot.Approved,
		Rejected:      tot.Rejected,
		AmountLent:    tot.AmountLent,
		AmountPaid:    tot.AmountPaid,
		AmountPending: tot.AmountLent.Sub(tot.AmountPaid),
		VotesPositive: tot.VotesPositive,
		VotesNegative: tot.VotesNegative,
		Monthly:       histogram(f.From, f.To, dates),
	}

	if u.cache != nil {
		if b, err := json.Marshal(dto); err == nil {
			if err := u.cache.Store(ctx, key, b); err != nil {
				l.WithError(err).Warn("report cache write failed")
			}
		}
	}
	return dto, nil
}

// window fills the defaults: To is now, From is the first day of the month
// DefaultWindowMonths-1 months before To.
func (u *Usecase) window(in SummaryInput) (domain.Filter, error) {
	to := in.To.UTC()
	if in.To.IsZero() {
		to = u.now()
	}
	from := in.From.UTC()
	if in.From.IsZero() {
		y, m, _ := to.Date()
		from = time.Date(y, m-(DefaultWindowMonths-1), 1, 0, 0, 0, 0, time.UTC)
	}
	if from.After(to) {
		return domain.Filter{}, domain.ErrInvalidRange
	}
	return domain.Filter{GroupID: in.GroupID, From: from, To: to}, nil
}

// histogram counts dates per calendar month, including empty months.
func histogram(from, to time.Time, dates []time.Time) []MonthCount {
	counts := map[string]int64{}
	for _, d := range dates {
		counts[d.UTC().Format("2006-01")]++
	}
	var out []MonthCount
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(to) {
		k := cur.Format("2006-01")
		out = append(out, MonthCount{Month: k, Count: counts[k]})
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// Minute granularity keeps the default window cacheable between requests.
func cacheKey(f domain.Filter) string {
	group := f.GroupID
	if group == "" {
		group = "all"
	}
	return fmt.Sprintf("summary:%s:%s:%s", group, f.From.Format("200601021504"), f.To.Truncate(time.Minute).Format("200601021504"))
}
