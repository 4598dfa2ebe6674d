package member

import "time"

type ProfileInput struct {
	DisplayName string
	Role        string
	GroupID     *string
}

type MemberDTO struct {
	MemberID    string    `json:"member_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	GroupID     *string   `json:"group_id,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
