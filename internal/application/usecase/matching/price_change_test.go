// Package matching contains the transaction-to-obligation reconciliation use cases.
package matching

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/domain/valueobject"
)

func TestPriceChangeNotifier_Notify(t *testing.T) {
	partnershipID := uuid.New()

	member := func() *entity.User {
		return &entity.User{
			ID:            uuid.New(),
			PartnershipID: partnershipID,
			Email:         uuid.NewString() + "@example.com",
		}
	}

	newCandidate := func(expected *decimal.Decimal) Candidate {
		ob := entity.NewObligation(
			partnershipID, "Netflix", nil, expected,
			valueobject.RecurrenceMonthly, date(2026, time.March, 1), entity.ObligationKindExpense,
		)
		settled := date(2026, time.March, 2)
		txn := entity.NewTransaction(uuid.New(), "ext-1", "NETFLIX.COM", decimal.RequireFromString("-22.99"), "EUR", &settled)
		return Candidate{Obligation: ob, Transaction: txn}
	}

	t.Run("records one notification per member", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		users := newFakeUserRepo(member(), member())
		notifier := NewPriceChangeNotifier(notifications, users)

		created, err := notifier.Notify(context.Background(), newCandidate(amountPtr("17.99")))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created != 2 {
			t.Errorf("expected 2 notifications, got %d", created)
		}
		if len(notifications.notifications) != 2 {
			t.Errorf("expected 2 persisted notifications, got %d", len(notifications.notifications))
		}
	})

	t.Run("amounts are recorded as absolute values", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		users := newFakeUserRepo(member())
		notifier := NewPriceChangeNotifier(notifications, users)

		if _, err := notifier.Notify(context.Background(), newCandidate(amountPtr("-17.99"))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, n := range notifications.notifications {
			if n.ExpectedAmount.IsNegative() || n.ObservedAmount.IsNegative() {
				t.Errorf("expected absolute amounts, got expected=%s observed=%s", n.ExpectedAmount, n.ObservedAmount)
			}
		}
	})

	t.Run("no expected amount means no band to fall outside of", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		users := newFakeUserRepo(member())
		notifier := NewPriceChangeNotifier(notifications, users)

		created, err := notifier.Notify(context.Background(), newCandidate(nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created != 0 {
			t.Errorf("expected 0 notifications, got %d", created)
		}
	})

	t.Run("unactioned notification suppresses a second one", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		users := newFakeUserRepo(member())
		notifier := NewPriceChangeNotifier(notifications, users)
		candidate := newCandidate(amountPtr("17.99"))

		if _, err := notifier.Notify(context.Background(), candidate); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		created, err := notifier.Notify(context.Background(), candidate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created != 0 {
			t.Errorf("expected dedup to suppress, got %d new notifications", created)
		}
	})

	t.Run("actioning reopens the dedup window", func(t *testing.T) {
		notifications := newFakeNotificationRepo()
		users := newFakeUserRepo(member())
		notifier := NewPriceChangeNotifier(notifications, users)
		candidate := newCandidate(amountPtr("17.99"))

		if _, err := notifier.Notify(context.Background(), candidate); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, n := range notifications.notifications {
			n.MarkActioned()
		}

		created, err := notifier.Notify(context.Background(), candidate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created != 1 {
			t.Errorf("expected a fresh notification after actioning, got %d", created)
		}
	})
}
