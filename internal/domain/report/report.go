package report

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidRange = errors.New("report range start is after its end")

// Filter narrows a summary to a creation window and, optionally, a group.
type Filter struct {
	GroupID string
	From    time.Time
	To      time.Time
}

// Totals are the aggregates computed by the store.
type Totals struct {
	Requested     int64
	Approved      int64
	Rejected      int64
	AmountLent    decimal.Decimal
	AmountPaid    decimal.Decimal
	VotesPositive int64
	VotesNegative int64
}

type Repository interface {
	Totals(ctx context.Context, f Filter) (*Totals, error)
	// RequestDates lists creation times of requests in the window.
	RequestDates(ctx context.Context, f Filter) ([]time.Time, error)
}

// Invalidator drops cached summaries after writes that change them.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
