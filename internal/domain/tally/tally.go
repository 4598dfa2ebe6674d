// Package tally applies a single vote to a request's counters and derives
// the resulting status.
package tally

import (
	"errors"
	"fmt"

	"microcredit-coop/internal/domain/request"
)

var (
	ErrRequestFinalized = errors.New("request already approved or rejected")
	ErrInvalidPolicy    = errors.New("invalid quorum policy")
)

// Policy is the decision rule: once Quorum votes are in, the request is
// approved with at least Approvals positive votes and rejected otherwise.
type Policy struct {
	Quorum    int
	Approvals int
}

func DefaultPolicy() Policy { return Policy{Quorum: 10, Approvals: 6} }

func (p Policy) Validate() error {
	if p.Quorum < 1 || p.Approvals < 1 || p.Approvals > p.Quorum {
		return fmt.Errorf("%w: quorum=%d approvals=%d", ErrInvalidPolicy, p.Quorum, p.Approvals)
	}
	return nil
}

// ForGroup caps the quorum at the number of eligible voters and scales the
// approvals threshold by the same ratio, rounding up.
func (p Policy) ForGroup(eligible int) Policy {
	if eligible <= 0 || eligible >= p.Quorum {
		return p
	}
	approvals := (p.Approvals*eligible + p.Quorum - 1) / p.Quorum
	if approvals < 1 {
		approvals = 1
	}
	return Policy{Quorum: eligible, Approvals: approvals}
}

// Snapshot is the part of a request the tally reads.
type Snapshot struct {
	Positive int
	Total    int
	Status   request.Status
}

type Outcome struct {
	Positive int
	Total    int
	Status   request.Status
	// Decided is true when this vote moved the request to approved/rejected.
	Decided bool
}

// Apply counts one vote. The snapshot must be undecided and consistent
// (total >= positive >= 0).
func Apply(s Snapshot, approve bool, p Policy) (Outcome, error) {
	if err := p.Validate(); err != nil {
		return Outcome{}, err
	}
	if s.Status.Final() {
		return Outcome{}, ErrRequestFinalized
	}
	if s.Positive < 0 || s.Total < s.Positive {
		return Outcome{}, fmt.Errorf("inconsistent tally: positive=%d total=%d", s.Positive, s.Total)
	}

	out := Outcome{Positive: s.Positive, Total: s.Total + 1}
	if approve {
		out.Positive++
	}

	switch {
	case out.Total >= p.Quorum && out.Positive >= p.Approvals:
		out.Status, out.Decided = request.StatusApproved, true
	case out.Total >= p.Quorum:
		out.Status, out.Decided = request.StatusRejected, true
	default:
		out.Status = request.StatusVoting
	}
	return out, nil
}
