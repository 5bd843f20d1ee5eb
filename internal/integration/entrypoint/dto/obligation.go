// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/pairfin/backend/internal/application/usecase/matching"
	"github.com/pairfin/backend/internal/domain/entity"
)

// CreateObligationRequest represents the request body for creating an obligation.
type CreateObligationRequest struct {
	Name            string  `json:"name"`
	MerchantPattern *string `json:"merchant_pattern"`
	ExpectedAmount  *string `json:"expected_amount"`
	Recurrence      string  `json:"recurrence" binding:"required"`
	NextDue         string  `json:"next_due" binding:"required"`
	Kind            string  `json:"kind" binding:"required,oneof=expense income"`
	IncomeType      *string `json:"income_type"`
}

// UpdateObligationRequest represents the request body for updating an obligation.
// Absent fields stay unchanged.
type UpdateObligationRequest struct {
	Name            *string `json:"name"`
	MerchantPattern *string `json:"merchant_pattern"`
	ExpectedAmount  *string `json:"expected_amount"`
	Recurrence      *string `json:"recurrence"`
	NextDue         *string `json:"next_due"`
	Active          *bool   `json:"active"`
}

// ObligationResponse represents an obligation in API responses.
type ObligationResponse struct {
	ID              string    `json:"id"`
	PartnershipID   string    `json:"partnership_id"`
	Name            string    `json:"name"`
	MerchantPattern *string   `json:"merchant_pattern,omitempty"`
	ExpectedAmount  *string   `json:"expected_amount,omitempty"`
	Recurrence      string    `json:"recurrence"`
	NextDue         string    `json:"next_due"`
	Kind            string    `json:"kind"`
	Active          bool      `json:"active"`
	IncomeType      *string   `json:"income_type,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateObligationResponse represents the response for obligation creation.
type CreateObligationResponse struct {
	Obligation ObligationResponse `json:"obligation"`
	// MatchedTransactions is how many historical transactions were
	// reconciled against the new obligation right away.
	MatchedTransactions int `json:"matched_transactions"`
	// MatchingFailure is set when the follow-up sweep failed; the
	// obligation itself was still created.
	MatchingFailure string `json:"matching_failure,omitempty"`
}

// UpdateObligationResponse represents the response for obligation updates.
type UpdateObligationResponse struct {
	Obligation          ObligationResponse `json:"obligation"`
	MatchedTransactions int                `json:"matched_transactions"`
	MatchingFailure     string             `json:"matching_failure,omitempty"`
}

// ListObligationsResponse represents the response for listing obligations.
type ListObligationsResponse struct {
	Obligations []ObligationResponse `json:"obligations"`
}

// RematchResponse represents the response for a manual re-match sweep.
type RematchResponse struct {
	MatchedTransactions int    `json:"matched_transactions"`
	MatchingFailure     string `json:"matching_failure,omitempty"`
}

// MatchSuggestionResponse represents one scored suggestion.
type MatchSuggestionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Confidence  ConfidenceResponse  `json:"confidence"`
}

// ConfidenceResponse represents the weighted confidence breakdown.
type ConfidenceResponse struct {
	Merchant float64 `json:"merchant"`
	Amount   float64 `json:"amount"`
	Timing   float64 `json:"timing"`
	Total    float64 `json:"total"`
}

// SuggestMatchesResponse represents the response for match suggestions.
type SuggestMatchesResponse struct {
	Suggestions []MatchSuggestionResponse `json:"suggestions"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"account_id"`
	Description string     `json:"description"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`
	IsIncome    bool       `json:"is_income"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToObligationResponse converts a domain Obligation entity to its DTO.
func ToObligationResponse(ob *entity.Obligation) ObligationResponse {
	resp := ObligationResponse{
		ID:              ob.ID.String(),
		PartnershipID:   ob.PartnershipID.String(),
		Name:            ob.Name,
		MerchantPattern: ob.MerchantPattern,
		Recurrence:      string(ob.Recurrence),
		NextDue:         ob.NextDue.Format("2006-01-02"),
		Kind:            string(ob.Kind),
		Active:          ob.Active,
		IncomeType:      ob.IncomeType,
		CreatedAt:       ob.CreatedAt,
		UpdatedAt:       ob.UpdatedAt,
	}

	if ob.ExpectedAmount != nil {
		amount := ob.ExpectedAmount.StringFixed(2)
		resp.ExpectedAmount = &amount
	}

	return resp
}

// ToTransactionResponse converts a domain Transaction entity to its DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID.String(),
		AccountID:   txn.AccountID.String(),
		Description: txn.Description,
		Amount:      txn.Amount.StringFixed(2),
		Currency:    txn.Currency,
		SettledAt:   txn.SettledAt,
		IsIncome:    txn.IsIncome,
		CreatedAt:   txn.CreatedAt,
	}
}

// ToMatchSuggestionResponse converts a scored suggestion to its DTO.
func ToMatchSuggestionResponse(s matching.MatchSuggestion) MatchSuggestionResponse {
	return MatchSuggestionResponse{
		Transaction: ToTransactionResponse(s.Transaction),
		Confidence: ConfidenceResponse{
			Merchant: s.Breakdown.Merchant,
			Amount:   s.Breakdown.Amount,
			Timing:   s.Breakdown.Timing,
			Total:    s.Breakdown.Total,
		},
	}
}
