package vote

import (
	"errors"
	"time"
)

var (
	ErrSelfVote      = errors.New("requester cannot vote on own request")
	ErrDuplicateVote = errors.New("member already voted on this request")
)

// Table: votes. The unique key on (request_id, voter_id) is the only
// duplicate guard; repositories translate its violation to ErrDuplicateVote.
type Vote struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID uint64    `gorm:"column:request_id;not null;uniqueIndex:ux_votes_request_voter,priority:1"`
	VoterID   string    `gorm:"column:voter_id;size:32;not null;uniqueIndex:ux_votes_request_voter,priority:2;index:idx_votes_voter"`
	Approve   bool      `gorm:"column:approve;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Vote) TableName() string { return "votes" }
