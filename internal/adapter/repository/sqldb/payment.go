package sqldb

import (
	"context"
	"time"

	paymentDomain "microcredit-coop/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) CreateBatch(ctx context.Context, ps []paymentDomain.Payment) error {
	if len(ps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ps).Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out).Error; err != nil {
		return nil, notFound(err, paymentDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *PaymentRepository) ListByMember(ctx context.Context, memberID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("due_date ASC, installment ASC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) ListByRequest(ctx context.Context, requestNumericID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestNumericID).
		Order("installment ASC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Where("status = ? AND due_date < ?", paymentDomain.StatusPending, paymentDomain.DateOf(before)).
		Updates(map[string]any{
			"status":     paymentDomain.StatusOverdue,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
