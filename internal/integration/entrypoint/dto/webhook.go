// Package dto defines data transfer objects for API requests and responses.
package dto

import "time"

// TransactionWebhookRequest is the payload the bank feed provider posts for
// each transaction event. The gateway in front of the API has already
// verified the provider signature; the event ID is what redeliveries repeat.
type TransactionWebhookRequest struct {
	EventID           string     `json:"event_id" binding:"required"`
	AccountExternalID string     `json:"account_external_id" binding:"required"`
	TransactionID     string     `json:"transaction_id" binding:"required"`
	Description       string     `json:"description" binding:"required"`
	Amount            string     `json:"amount" binding:"required"`
	Currency          string     `json:"currency" binding:"required,len=3"`
	SettledAt         *time.Time `json:"settled_at"`
}

// TransactionWebhookResponse acknowledges a webhook event. Soft matching
// failures are reported in the body; the HTTP status stays 200 so the
// provider does not redeliver what cannot succeed on retry.
type TransactionWebhookResponse struct {
	EventID           string   `json:"event_id"`
	Duplicate         bool     `json:"duplicate"`
	MatchedObligation []string `json:"matched_obligations"`
	Advanced          int      `json:"advanced"`
	PriceChangeAlerts int      `json:"price_change_alerts"`
	RoutedToIncome    bool     `json:"routed_to_income"`
	MatchingFailure   string   `json:"matching_failure,omitempty"`
}
