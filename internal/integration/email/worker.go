// Package email provides notification delivery via Resend.
package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/integration/email/templates"
)

// Worker delivers pending notifications by email. Notifications are always
// recorded at detection time; the recipient's preference is checked here, at
// delivery time, so disabled alerts are skipped without being lost.
type Worker struct {
	notifications adapter.NotificationRepository
	users         adapter.UserRepository
	obligations   adapter.ObligationRepository
	transactions  adapter.TransactionRepository
	sender        adapter.EmailSender
	renderer      *templates.Renderer
	pollInterval  time.Duration
	batchSize     int
}

// WorkerConfig holds configuration for the notification worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 15 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new notification delivery worker.
func NewWorker(
	notifications adapter.NotificationRepository,
	users adapter.UserRepository,
	obligations adapter.ObligationRepository,
	transactions adapter.TransactionRepository,
	sender adapter.EmailSender,
	renderer *templates.Renderer,
	config WorkerConfig,
) *Worker {
	return &Worker{
		notifications: notifications,
		users:         users,
		obligations:   obligations,
		transactions:  transactions,
		sender:        sender,
		renderer:      renderer,
		pollInterval:  config.PollInterval,
		batchSize:     config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Notification worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Process immediately on start, then on ticker
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Notification worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// processBatch fetches and delivers a batch of pending notifications.
func (w *Worker) processBatch(ctx context.Context) {
	pending, err := w.notifications.ListPendingDelivery(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to list pending notifications", "error", err)
		return
	}

	if len(pending) == 0 {
		return
	}

	slog.Debug("Processing notification batch", "count", len(pending))

	for _, notification := range pending {
		select {
		case <-ctx.Done():
			return
		default:
			w.deliver(ctx, notification)
		}
	}
}

// deliver sends a single notification.
func (w *Worker) deliver(ctx context.Context, notification *entity.Notification) {
	logger := slog.With(
		"notification_id", notification.ID,
		"type", notification.Type,
		"user_id", notification.UserID,
	)

	user, err := w.users.GetByID(ctx, notification.UserID)
	if err != nil {
		logger.Error("Failed to load notification recipient", "error", err)
		w.handleFailure(ctx, notification, err, true)
		return
	}

	if notification.Type == entity.NotificationTypePriceChange && !user.NotifyPriceChanges {
		notification.MarkSkipped()
		if err := w.notifications.Update(ctx, notification); err != nil {
			logger.Error("Failed to mark notification skipped", "error", err)
		}
		return
	}

	subject, html, text, err := w.render(ctx, notification, user)
	if err != nil {
		logger.Error("Failed to render notification email", "error", err)
		w.handleFailure(ctx, notification, err, true) // template errors are permanent
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      user.Email,
		Name:    user.Name,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send notification email", "error", err)

		var notifErr *domainerror.NotificationError
		isPermanent := errors.As(err, &notifErr) && notifErr.Code == domainerror.ErrCodePermanentDeliveryFailure

		w.handleFailure(ctx, notification, err, isPermanent)
		return
	}

	notification.MarkSent(result.ProviderID)
	if err := w.notifications.Update(ctx, notification); err != nil {
		logger.Error("Failed to mark notification sent", "error", err)
		return
	}

	logger.Info("Notification delivered", "provider_id", result.ProviderID)
}

// render builds the subject and body for a notification.
func (w *Worker) render(ctx context.Context, notification *entity.Notification, user *entity.User) (subject, html, text string, err error) {
	switch notification.Type {
	case entity.NotificationTypePriceChange:
		obligation, err := w.obligations.GetByID(ctx, notification.ObligationID)
		if err != nil {
			return "", "", "", err
		}

		transaction, err := w.transactions.GetByID(ctx, notification.TransactionID)
		if err != nil {
			return "", "", "", err
		}

		data := templates.PriceChangeData{
			UserName:       user.Name,
			ObligationName: obligation.Name,
			ExpectedAmount: notification.ExpectedAmount.StringFixed(2),
			ObservedAmount: notification.ObservedAmount.StringFixed(2),
			Currency:       transaction.Currency,
		}

		html, text, err := w.renderer.Render("price_change", data)
		if err != nil {
			return "", "", "", err
		}

		subject := "Price change detected: " + obligation.Name
		return subject, html, text, nil
	default:
		return "", "", "", domainerror.NewNotificationError(
			domainerror.ErrCodePermanentDeliveryFailure,
			"unknown notification type",
			nil,
		)
	}
}

// handleFailure records a failed delivery attempt.
func (w *Worker) handleFailure(ctx context.Context, notification *entity.Notification, err error, permanent bool) {
	notification.MarkFailed(err, permanent)

	if updateErr := w.notifications.Update(ctx, notification); updateErr != nil {
		slog.Error("Failed to update notification after failure",
			"notification_id", notification.ID,
			"error", updateErr,
		)
	}

	if notification.DeliveryStatus == entity.DeliveryStatusFailed {
		slog.Warn("Notification delivery permanently failed",
			"notification_id", notification.ID,
			"attempts", notification.Attempts,
			"last_error", notification.LastError,
		)
	}
}

// ProcessNow delivers all pending notifications immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
