// Package matching contains the transaction-to-obligation reconciliation use cases.
package matching

import (
	"context"
	"log/slog"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
)

// PriceChangeNotifier handles merchant-matched candidates whose amount fell
// outside the tolerance band: instead of a match, it records one
// deduplicated price-change notification per partnership member. Recording
// is unconditional; the user's notification preference gates delivery in the
// worker, so re-enabling the category never requires re-scanning history.
type PriceChangeNotifier struct {
	notifications adapter.NotificationRepository
	users         adapter.UserRepository
}

// NewPriceChangeNotifier creates a new PriceChangeNotifier instance.
func NewPriceChangeNotifier(
	notifications adapter.NotificationRepository,
	users adapter.UserRepository,
) *PriceChangeNotifier {
	return &PriceChangeNotifier{
		notifications: notifications,
		users:         users,
	}
}

// Notify records price-change notifications for one candidate. A still
// unactioned notification for the same obligation suppresses new ones.
// Returns the number of notifications created.
func (n *PriceChangeNotifier) Notify(ctx context.Context, c Candidate) (int, error) {
	ob := c.Obligation
	if ob.ExpectedAmount == nil {
		// Without an expected amount there is no band to fall outside of.
		return 0, nil
	}

	exists, err := n.notifications.HasUnactioned(ctx, ob.ID, entity.NotificationTypePriceChange)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	members, err := n.users.ListByPartnership(ctx, ob.PartnershipID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, member := range members {
		notification := entity.NewPriceChangeNotification(
			member.ID, ob.ID, c.Transaction.ID,
			ob.ExpectedAmount.Abs(), c.Transaction.Amount.Abs(),
		)
		if err := n.notifications.Create(ctx, notification); err != nil {
			slog.Error("Failed to record price-change notification",
				"obligation_id", ob.ID,
				"user_id", member.ID,
				"error", err,
			)
			continue
		}
		created++
	}

	slog.Info("Price change detected",
		"obligation_id", ob.ID,
		"transaction_id", c.Transaction.ID,
		"expected", ob.ExpectedAmount.Abs(),
		"observed", c.Transaction.Amount.Abs(),
		"notified", created,
	)

	return created, nil
}
