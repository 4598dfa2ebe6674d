package sqldb

import (
	"context"

	memberDomain "microcredit-coop/internal/domain/member"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) GetByMemberID(ctx context.Context, memberID string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&out).Error; err != nil {
		return nil, notFound(err, memberDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *MemberRepository) Upsert(ctx context.Context, m *memberDomain.Member) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "role", "group_id", "updated_at"}),
	}).Create(m).Error
}

func (r *MemberRepository) ListByGroup(ctx context.Context, groupID string) ([]memberDomain.Member, error) {
	var out []memberDomain.Member
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("display_name ASC").
		Find(&out).Error
	return out, err
}

func (r *MemberRepository) CountByGroup(ctx context.Context, groupID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&memberDomain.Member{}).Where("group_id = ?", groupID).Count(&n).Error
	return n, err
}
