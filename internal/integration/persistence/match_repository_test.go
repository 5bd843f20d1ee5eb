// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/domain/valueobject"
	"github.com/pairfin/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.PartnershipModel{},
		&model.AccountModel{},
		&model.ObligationModel{},
		&model.TransactionModel{},
		&model.MatchModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

type matchRepoFixture struct {
	db          *gorm.DB
	obligation  *entity.Obligation
	transaction *entity.Transaction
}

func newMatchRepoFixture(t *testing.T) *matchRepoFixture {
	t.Helper()
	db := newTestDB(t)

	partnership := &model.PartnershipModel{
		ID:        uuid.New(),
		Name:      "Test household",
		Timezone:  "UTC",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(partnership).Error; err != nil {
		t.Fatalf("failed to create partnership: %v", err)
	}

	account := &model.AccountModel{
		ID:            uuid.New(),
		PartnershipID: partnership.ID,
		Name:          "Joint checking",
		ExternalID:    "acc-ext-1",
		Active:        true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	amount := decimal.RequireFromString("17.99")
	obligation := entity.NewObligation(
		partnership.ID, "Netflix", nil, &amount,
		valueobject.RecurrenceMonthly,
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		entity.ObligationKindExpense,
	)
	if err := db.Create(model.ObligationFromEntity(obligation)).Error; err != nil {
		t.Fatalf("failed to create obligation: %v", err)
	}

	settled := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	transaction := entity.NewTransaction(
		account.ID, "txn-ext-1", "NETFLIX.COM AMSTERDAM",
		decimal.RequireFromString("-17.99"), "EUR", &settled,
	)
	if err := db.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	return &matchRepoFixture{db: db, obligation: obligation, transaction: transaction}
}

func TestMatchRepository_InsertIgnoringDuplicates(t *testing.T) {
	f := newMatchRepoFixture(t)
	repo := NewMatchRepository(f.db)
	ctx := context.Background()

	first := entity.NewMatch(f.obligation.ID, f.transaction.ID, valueobject.MatchConfidence, "2026-03-01")

	inserted, err := repo.InsertIgnoringDuplicates(ctx, []*entity.Match{first})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inserted) != 1 {
		t.Fatalf("expected 1 inserted row, got %d", len(inserted))
	}

	// Same pair under a fresh match ID, as a redelivered webhook produces.
	duplicate := entity.NewMatch(f.obligation.ID, f.transaction.ID, valueobject.MatchConfidence, "2026-03-01")

	inserted, err = repo.InsertIgnoringDuplicates(ctx, []*entity.Match{duplicate})
	if err != nil {
		t.Fatalf("unexpected error on duplicate insert: %v", err)
	}
	if len(inserted) != 0 {
		t.Errorf("expected the duplicate pair to be ignored, got %d inserted", len(inserted))
	}

	matches, err := repo.ListByObligation(ctx, f.obligation.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected exactly one stored match, got %d", len(matches))
	}
}

func TestMatchRepository_InsertReportsOnlyNewRows(t *testing.T) {
	f := newMatchRepoFixture(t)
	repo := NewMatchRepository(f.db)
	ctx := context.Background()

	settled := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
	second := entity.NewTransaction(
		f.transaction.AccountID, "txn-ext-2", "NETFLIX.COM AMSTERDAM",
		decimal.RequireFromString("-17.99"), "EUR", &settled,
	)
	if err := f.db.Create(model.TransactionFromEntity(second)).Error; err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	if _, err := repo.InsertIgnoringDuplicates(ctx, []*entity.Match{
		entity.NewMatch(f.obligation.ID, f.transaction.ID, valueobject.MatchConfidence, "2026-03-01"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A mixed batch: one known pair, one new pair.
	inserted, err := repo.InsertIgnoringDuplicates(ctx, []*entity.Match{
		entity.NewMatch(f.obligation.ID, f.transaction.ID, valueobject.MatchConfidence, "2026-03-01"),
		entity.NewMatch(f.obligation.ID, second.ID, valueobject.MatchConfidence, "2026-04-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inserted) != 1 {
		t.Fatalf("expected only the new pair, got %d rows", len(inserted))
	}
	if inserted[0].TransactionID != second.ID {
		t.Errorf("expected the new pair's transaction %s, got %s", second.ID, inserted[0].TransactionID)
	}
}

func TestMatchRepository_ExistsForPair(t *testing.T) {
	f := newMatchRepoFixture(t)
	repo := NewMatchRepository(f.db)
	ctx := context.Background()

	exists, err := repo.ExistsForPair(ctx, f.obligation.ID, f.transaction.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected no match before insert")
	}

	if _, err := repo.InsertIgnoringDuplicates(ctx, []*entity.Match{
		entity.NewMatch(f.obligation.ID, f.transaction.ID, valueobject.MatchConfidence, "2026-03-01"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err = repo.ExistsForPair(ctx, f.obligation.ID, f.transaction.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected the pair to exist after insert")
	}
}

func TestMatchRepository_ListMatchedTransactionIDs(t *testing.T) {
	f := newMatchRepoFixture(t)
	repo := NewMatchRepository(f.db)
	ctx := context.Background()

	ids, err := repo.ListMatchedTransactionIDs(ctx, f.obligation.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected an empty set, got %d", len(ids))
	}

	if _, err := repo.InsertIgnoringDuplicates(ctx, []*entity.Match{
		entity.NewMatch(f.obligation.ID, f.transaction.ID, valueobject.MatchConfidence, "2026-03-01"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids, err = repo.ListMatchedTransactionIDs(ctx, f.obligation.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ids[f.transaction.ID]; !ok {
		t.Errorf("expected %s in the matched set", f.transaction.ID)
	}
}
