package member

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"microcredit-coop/internal/domain/apperr"
	domain "microcredit-coop/internal/domain/member"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Me(ctx context.Context, actor domain.Actor) (*MemberDTO, error) {
	m, err := u.repo.GetByMemberID(ctx, actor.MemberID)
	if err != nil {
		return nil, apperr.Wrap("get member", err, domain.ErrNotFound)
	}
	dto := toDTO(m)
	return &dto, nil
}

// UpsertProfile creates or replaces the actor's profile. Role defaults to member.
func (u *Usecase) UpsertProfile(ctx context.Context, actor domain.Actor, in ProfileInput) (*MemberDTO, error) {
	name := strings.TrimSpace(in.DisplayName)
	if name == "" || len([]rune(name)) > 120 {
		return nil, fmt.Errorf("%w: display name is required and limited to 120 characters", domain.ErrInvalidProfile)
	}
	role := domain.Role(in.Role)
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidProfile, in.Role)
	}
	var group *string
	if in.GroupID != nil && *in.GroupID != "" {
		g := *in.GroupID
		group = &g
	}

	m := &domain.Member{
		MemberID:    actor.MemberID,
		DisplayName: name,
		Role:        role,
		GroupID:     group,
	}
	if err := u.repo.Upsert(ctx, m); err != nil {
		return nil, apperr.Persistence("upsert member", err)
	}
	dto := toDTO(m)
	return &dto, nil
}

// GroupMembers lists a group for one of its own members.
func (u *Usecase) GroupMembers(ctx context.Context, actor domain.Actor, groupID string) ([]MemberDTO, error) {
	me, err := u.repo.GetByMemberID(ctx, actor.MemberID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, domain.ErrNotGroupMember
	case err != nil:
		return nil, apperr.Persistence("get member", err)
	case !me.InGroup(groupID):
		return nil, domain.ErrNotGroupMember
	}

	ms, err := u.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Persistence("list members", err)
	}
	out := make([]MemberDTO, 0, len(ms))
	for i := range ms {
		out = append(out, toDTO(&ms[i]))
	}
	return out, nil
}

func toDTO(m *domain.Member) MemberDTO {
	return MemberDTO{
		MemberID:    m.MemberID,
		DisplayName: m.DisplayName,
		Role:        string(m.Role),
		GroupID:     m.GroupID,
		UpdatedAt:   m.UpdatedAt,
	}
}
