package sqldb

import (
	"context"
	"errors"
	"testing"

	voteDomain "microcredit-coop/internal/domain/vote"
	"microcredit-coop/pkg/id"
)

func TestVote_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	reqs := NewRequestRepository(db)
	votes := NewVoteRepository(db)
	ctx := context.Background()

	lr := makeRequest(id.NewID32(), groupA)
	if err := reqs.Create(ctx, lr); err != nil {
		t.Fatal(err)
	}
	v1 := &voteDomain.Vote{RequestID: lr.ID, VoterID: id.NewID32(), Approve: true}
	v2 := &voteDomain.Vote{RequestID: lr.ID, VoterID: id.NewID32(), Approve: false}
	for _, v := range []*voteDomain.Vote{v1, v2} {
		if err := votes.Create(ctx, v); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := votes.ListByRequest(ctx, lr.ID)
	if err != nil {
		t.Fatalf("ListByRequest: %v", err)
	}
	if len(got) != 2 || got[0].VoterID != v1.VoterID || !got[0].Approve || got[1].Approve {
		t.Fatalf("unexpected votes: %+v", got)
	}
}

func TestVote_UniqueKeyYieldsDuplicateVote(t *testing.T) {
	db := openTestDB(t)
	votes := NewVoteRepository(db)
	ctx := context.Background()

	voter := id.NewID32()
	if err := votes.Create(ctx, &voteDomain.Vote{RequestID: 1, VoterID: voter, Approve: true}); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	err := votes.Create(ctx, &voteDomain.Vote{RequestID: 1, VoterID: voter, Approve: false})
	if !errors.Is(err, voteDomain.ErrDuplicateVote) {
		t.Fatalf("second vote: want ErrDuplicateVote, got %v", err)
	}

	// same voter on another request is fine
	if err := votes.Create(ctx, &voteDomain.Vote{RequestID: 2, VoterID: voter, Approve: true}); err != nil {
		t.Fatalf("vote on other request: %v", err)
	}
}
