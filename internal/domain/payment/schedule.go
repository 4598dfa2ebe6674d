package payment

import (
	"time"

	"microcredit-coop/pkg/id"

	"github.com/shopspring/decimal"
)

// Installment is one row of a repayment plan before ids are assigned.
type Installment struct {
	Number  int
	Amount  decimal.Decimal
	DueDate time.Time
}

// BuildSchedule splits amount into term monthly installments. Each one is
// amount/term truncated to cents; the last absorbs the remainder so the plan
// sums exactly to amount. Due dates fall on the decision day of each
// following month, clamped to the month's last day.
func BuildSchedule(amount decimal.Decimal, term int, decidedAt time.Time) []Installment {
	if term <= 0 || !amount.IsPositive() {
		return nil
	}
	base := amount.Div(decimal.NewFromInt(int64(term))).Truncate(2)
	start := DateOf(decidedAt)

	out := make([]Installment, 0, term)
	allocated := decimal.Zero
	for i := 1; i <= term; i++ {
		amt := base
		if i == term {
			amt = amount.Sub(allocated)
		}
		allocated = allocated.Add(amt)
		out = append(out, Installment{
			Number:  i,
			Amount:  amt,
			DueDate: AddMonths(start, i),
		})
	}
	return out
}

// DateOf truncates t to midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds n months without spilling into the next month
// (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// Plan turns the schedule of an approved request into pending payments
// owned by the borrower.
func Plan(requestNumericID uint64, memberID string, amount decimal.Decimal, term int, decidedAt time.Time) []Payment {
	insts := BuildSchedule(amount, term, decidedAt)
	out := make([]Payment, 0, len(insts))
	for _, in := range insts {
		out = append(out, Payment{
			PaymentID:   id.NewID32(),
			RequestID:   requestNumericID,
			Installment: in.Number,
			MemberID:    memberID,
			Amount:      in.Amount,
			DueDate:     in.DueDate,
			Status:      StatusPending,
		})
	}
	return out
}

// Effective reports overdue for a pending payment past its due day even
// before the sweep has run.
func (p *Payment) Effective(now time.Time) Status {
	if p.Status == StatusPending && p.DueDate.Before(DateOf(now)) {
		return StatusOverdue
	}
	return p.Status
}
