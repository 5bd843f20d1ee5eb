// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a bank transaction delivered by the upstream feed, immutable
// once settled. Negative amounts are expenses, positive amounts income. The
// engine never mutates a transaction except to flag income as a side effect
// of income matching.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	ExternalID  string // transaction ID at the bank feed provider
	Description string
	Amount      decimal.Decimal // signed; negative = expense
	Currency    string
	SettledAt   *time.Time
	IsIncome    bool
	IncomeType  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	accountID uuid.UUID,
	externalID string,
	description string,
	amount decimal.Decimal,
	currency string,
	settledAt *time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		ExternalID:  externalID,
		Description: description,
		Amount:      amount,
		Currency:    currency,
		SettledAt:   settledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EffectiveDate is the date a transaction counts against a billing period:
// the settlement time when known, the creation time otherwise.
func (t *Transaction) EffectiveDate() time.Time {
	if t.SettledAt != nil {
		return *t.SettledAt
	}
	return t.CreatedAt
}

// IsExpense reports whether the transaction is an outgoing payment.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}
