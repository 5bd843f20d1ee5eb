// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/application/usecase/matching"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
	"github.com/pairfin/backend/internal/integration/entrypoint/dto"
)

// eventDedupTTL is how long a webhook event ID stays in the dedup cache.
// Redeliveries past this window fall through to the database's
// conflict-ignoring insert, which remains correct without the cache.
const eventDedupTTL = 24 * time.Hour

// WebhookController ingests transaction events from the bank feed provider.
// Delivery is at-least-once: every path through Ingest must be safe to
// repeat with the same payload.
type WebhookController struct {
	accounts     adapter.AccountRepository
	transactions adapter.TransactionRepository
	events       adapter.EventCache
	process      *matching.ProcessTransactionUseCase
}

// NewWebhookController creates a new webhook controller instance.
func NewWebhookController(
	accounts adapter.AccountRepository,
	transactions adapter.TransactionRepository,
	events adapter.EventCache,
	process *matching.ProcessTransactionUseCase,
) *WebhookController {
	return &WebhookController{
		accounts:     accounts,
		transactions: transactions,
		events:       events,
		process:      process,
	}
}

// Ingest handles POST /webhooks/transactions requests. Matching failures are
// soft: the event is acknowledged with a 200 either way, since the provider
// redelivers non-2xx responses and a retry cannot fix a missing obligation.
func (c *WebhookController) Ingest(ctx *gin.Context) {
	var req dto.TransactionWebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid webhook payload: " + err.Error(),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount",
		})
		return
	}

	logger := slog.With("event_id", req.EventID, "external_id", req.TransactionID)

	// Cache-level dedup sheds redelivered events early. A cache outage
	// degrades to full processing, which is idempotent anyway.
	first, err := c.events.MarkSeen(ctx.Request.Context(), req.EventID, eventDedupTTL)
	if err != nil {
		logger.Warn("Event cache unavailable, processing without dedup", "error", err)
		first = true
	}
	if !first {
		logger.Info("Duplicate webhook event shed by cache")
		ctx.JSON(http.StatusOK, dto.TransactionWebhookResponse{
			EventID:   req.EventID,
			Duplicate: true,
		})
		return
	}

	account, err := c.accounts.GetByExternalID(ctx.Request.Context(), req.AccountExternalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			// Acknowledged: redelivery cannot resolve an unknown account.
			logger.Warn("Webhook references unknown account", "account_external_id", req.AccountExternalID)
			ctx.JSON(http.StatusOK, dto.TransactionWebhookResponse{
				EventID:         req.EventID,
				MatchingFailure: domainerror.ErrAccountNotFound.Error(),
			})
			return
		}
		logger.Error("Webhook failed to resolve account", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	txn := entity.NewTransaction(
		account.ID,
		req.TransactionID,
		req.Description,
		amount,
		req.Currency,
		req.SettledAt,
	)

	stored, err := c.transactions.UpsertByExternalID(ctx.Request.Context(), txn)
	if err != nil {
		// Non-2xx asks the provider to redeliver; persistence errors are
		// the one case where a retry can help.
		logger.Error("Webhook failed to persist transaction", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	output := c.process.Execute(ctx.Request.Context(), matching.ProcessTransactionInput{
		TransactionID: stored.ID,
	})

	matched := make([]string, len(output.MatchedObligationIDs))
	for i, id := range output.MatchedObligationIDs {
		matched[i] = id.String()
	}

	ctx.JSON(http.StatusOK, dto.TransactionWebhookResponse{
		EventID:           req.EventID,
		MatchedObligation: matched,
		Advanced:          output.Advanced,
		PriceChangeAlerts: output.PriceChangeAlerts,
		RoutedToIncome:    output.RoutedToIncome,
		MatchingFailure:   output.FailureReason,
	})
}
