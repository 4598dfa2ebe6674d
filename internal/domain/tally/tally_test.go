package tally

import (
	"errors"
	"testing"

	"microcredit-coop/internal/domain/request"
)

func TestApply_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		in          Snapshot
		approve     bool
		wantPos     int
		wantTotal   int
		wantStatus  request.Status
		wantDecided bool
	}{
		{"quorum reached with six approvals", Snapshot{5, 9, request.StatusVoting}, true, 6, 10, request.StatusApproved, true},
		{"quorum reached without enough approvals", Snapshot{2, 9, request.StatusVoting}, true, 3, 10, request.StatusRejected, true},
		{"first vote opens voting", Snapshot{0, 0, request.StatusPending}, false, 0, 1, request.StatusVoting, false},
		{"first positive vote", Snapshot{0, 0, request.StatusPending}, true, 1, 1, request.StatusVoting, false},
		{"negative tenth vote with six approvals", Snapshot{6, 9, request.StatusVoting}, false, 6, 10, request.StatusApproved, true},
		{"negative tenth vote with five approvals", Snapshot{5, 9, request.StatusVoting}, false, 5, 10, request.StatusRejected, true},
		{"below quorum stays voting", Snapshot{7, 8, request.StatusVoting}, true, 8, 9, request.StatusVoting, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.in, tt.approve, DefaultPolicy())
			if err != nil {
				t.Fatalf("Apply err: %v", err)
			}
			if got.Positive != tt.wantPos || got.Total != tt.wantTotal {
				t.Fatalf("tally = %d/%d, want %d/%d", got.Positive, got.Total, tt.wantPos, tt.wantTotal)
			}
			if got.Status != tt.wantStatus || got.Decided != tt.wantDecided {
				t.Fatalf("status = %s decided=%v, want %s decided=%v", got.Status, got.Decided, tt.wantStatus, tt.wantDecided)
			}
		})
	}
}

func TestApply_RejectsFinalized(t *testing.T) {
	for _, s := range []request.Status{request.StatusApproved, request.StatusRejected} {
		_, err := Apply(Snapshot{6, 10, s}, true, DefaultPolicy())
		if !errors.Is(err, ErrRequestFinalized) {
			t.Fatalf("status %s: want ErrRequestFinalized, got %v", s, err)
		}
	}
}

func TestApply_RejectsInconsistentSnapshot(t *testing.T) {
	for _, s := range []Snapshot{{3, 2, request.StatusVoting}, {-1, 0, request.StatusVoting}} {
		if _, err := Apply(s, true, DefaultPolicy()); err == nil {
			t.Fatalf("expected error for %+v", s)
		}
	}
}

func TestApply_PositiveNeverExceedsTotal(t *testing.T) {
	p := DefaultPolicy()
	for mask := 0; mask < 1<<p.Quorum; mask++ {
		s := Snapshot{Status: request.StatusPending}
		for i := 0; i < p.Quorum; i++ {
			out, err := Apply(s, mask&(1<<i) != 0, p)
			if err != nil {
				t.Fatalf("mask %b vote %d: %v", mask, i, err)
			}
			if out.Positive > out.Total || out.Positive < 0 {
				t.Fatalf("invariant broken: %+v", out)
			}
			s = Snapshot{Positive: out.Positive, Total: out.Total, Status: out.Status}
		}
		if !s.Status.Final() {
			t.Fatalf("mask %b: not decided after quorum votes, status=%s", mask, s.Status)
		}
	}
}

func TestPolicy_Validate(t *testing.T) {
	bad := []Policy{{0, 0}, {10, 0}, {5, 6}, {-1, 1}}
	for _, p := range bad {
		if !errors.Is(p.Validate(), ErrInvalidPolicy) {
			t.Fatalf("expected ErrInvalidPolicy for %+v", p)
		}
	}
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
	if _, err := Apply(Snapshot{}, true, Policy{}); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("Apply with zero policy: %v", err)
	}
}

func TestPolicy_ForGroup(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		eligible int
		want     Policy
	}{
		{0, p},
		{15, p},
		{10, p},
		{4, Policy{Quorum: 4, Approvals: 3}},
		{5, Policy{Quorum: 5, Approvals: 3}},
		{1, Policy{Quorum: 1, Approvals: 1}},
	}
	for _, tt := range tests {
		if got := p.ForGroup(tt.eligible); got != tt.want {
			t.Fatalf("ForGroup(%d) = %+v, want %+v", tt.eligible, got, tt.want)
		}
	}
}

func TestApply_QuorumOfOneDecidesImmediately(t *testing.T) {
	out, err := Apply(Snapshot{Status: request.StatusPending}, false, Policy{Quorum: 1, Approvals: 1})
	if err != nil {
		t.Fatal(err)
	}
	if out.Status != request.StatusRejected || !out.Decided {
		t.Fatalf("got %+v", out)
	}
}
