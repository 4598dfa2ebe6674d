package member

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("member not found")
	ErrNoGroup        = errors.New("member has no group assigned")
	ErrNotGroupMember = errors.New("member does not belong to the group")
	ErrInvalidProfile = errors.New("invalid member profile")
)

type Role string

const (
	RoleLeader    Role = "leader"
	RoleTreasurer Role = "treasurer"
	RoleMember    Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleLeader || r == RoleTreasurer || r == RoleMember
}

// Actor is the authenticated member performing an operation.
type Actor struct {
	MemberID string
}

// Table: members
type Member struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MemberID    string    `gorm:"column:member_id;size:32;not null;uniqueIndex:ux_members_member_id" json:"member_id"`
	DisplayName string    `gorm:"column:display_name;size:120;not null" json:"display_name"`
	Role        Role      `gorm:"column:role;size:16;not null;default:'member'" json:"role"`
	GroupID     *string   `gorm:"column:group_id;size:32;index:idx_members_group" json:"group_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string { return "members" }

func (m *Member) InGroup(groupID string) bool {
	return m.GroupID != nil && *m.GroupID != "" && *m.GroupID == groupID
}
