package sqldb

import (
	"context"

	requestDomain "microcredit-coop/internal/domain/request"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *RequestRepository) Tx(ctx context.Context, fn func(repo requestDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RequestRepository{db: tx})
	})
}

func (r *RequestRepository) Create(ctx context.Context, lr *requestDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *RequestRepository) Save(ctx context.Context, lr *requestDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Save(lr).Error
}

func (r *RequestRepository) GetByRequestID(ctx context.Context, requestID string) (*requestDomain.LoanRequest, error) {
	var out requestDomain.LoanRequest
	if err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out).Error; err != nil {
		return nil, notFound(err, requestDomain.ErrNotFound)
	}
	return &out, nil
}

// SQLite has no row locks; its dialect drops the FOR UPDATE clause and the
// single-writer lock gives the same serialization.
func (r *RequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*requestDomain.LoanRequest, error) {
	var out requestDomain.LoanRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, requestDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *RequestRepository) GetOpenByRequesterID(ctx context.Context, requesterID string) (*requestDomain.LoanRequest, error) {
	var out requestDomain.LoanRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status IN ?", requesterID,
			[]requestDomain.Status{requestDomain.StatusPending, requestDomain.StatusVoting}).
		Order("created_at DESC, id DESC").
		First(&out).Error
	if err != nil {
		return nil, notFound(err, requestDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]requestDomain.LoanRequest, error) {
	var out []requestDomain.LoanRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *RequestRepository) ListByGroup(ctx context.Context, groupID string, status requestDomain.Status) ([]requestDomain.LoanRequest, error) {
	q := r.db.WithContext(ctx).Where("group_id = ?", groupID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []requestDomain.LoanRequest
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}
