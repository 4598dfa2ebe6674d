package sqldb

import (
	"testing"
	"time"

	"microcredit-coop/internal/domain/member"
	"microcredit-coop/internal/domain/request"
	"microcredit-coop/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	groupA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	groupB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// openTestDB creates an in-memory sqlite DB with the full schema. One
// connection only: every new :memory: connection is a fresh database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func makeRequest(requesterID, groupID string) *request.LoanRequest {
	return &request.LoanRequest{
		RequestID:   id.NewID32(),
		RequesterID: requesterID,
		GroupID:     groupID,
		Amount:      decimal.NewFromInt(300),
		Category:    request.CategoryBusiness,
		Purpose:     "materials",
		TermMonths:  3,
		Status:      request.StatusPending,
	}
}

func makeMember(memberID, groupID string) *member.Member {
	m := &member.Member{MemberID: memberID, DisplayName: "M " + memberID[:4], Role: member.RoleMember}
	if groupID != "" {
		g := groupID
		m.GroupID = &g
	}
	return m
}
