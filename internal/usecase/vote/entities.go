package vote

import (
	"time"

	"microcredit-coop/internal/domain/tally"
)

// Policy is the decision rule applied to every cast. With ScaleToGroup the
// rule is shrunk to the request's eligible voters (group size - 1).
type Policy struct {
	Rule         tally.Policy
	ScaleToGroup bool
}

type VoteResult struct {
	RequestID       string `json:"request_id"`
	VoterID         string `json:"voter_id"`
	Approve         bool   `json:"approve"`
	VotesPositive   int    `json:"votes_positive"`
	VotesNegative   int    `json:"votes_negative"`
	VotesTotal      int    `json:"votes_total"`
	Status          string `json:"status"`
	Decided         bool   `json:"decided"`
	Quorum          int    `json:"quorum"`
	ApprovalsNeeded int    `json:"approvals_needed"`
	PaymentsCreated int    `json:"payments_created,omitempty"`
}

type VoteDTO struct {
	VoterID   string    `json:"voter_id"`
	Approve   bool      `json:"approve"`
	CreatedAt time.Time `json:"created_at"`
}
