package sqldb

import (
	"microcredit-coop/internal/domain/member"
	"microcredit-coop/internal/domain/payment"
	"microcredit-coop/internal/domain/request"
	"microcredit-coop/internal/domain/vote"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&member.Member{},
		&request.LoanRequest{},
		&vote.Vote{},
		&payment.Payment{},
	)
}
