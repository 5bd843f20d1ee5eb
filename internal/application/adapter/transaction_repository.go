// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/domain/entity"
)

// AmountSign filters transaction listings by amount direction.
type AmountSign int

const (
	AmountAny      AmountSign = iota
	AmountNegative            // expenses
	AmountPositive            // income
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// GetByID retrieves a transaction by ID.
	// Returns domain ErrTransactionNotFound when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// ListByAccounts retrieves transactions on the given accounts, newest
	// first. A non-nil since restricts to transactions effective on or
	// after it; sign restricts the amount direction.
	ListByAccounts(ctx context.Context, accountIDs []uuid.UUID, since *time.Time, sign AmountSign) ([]*entity.Transaction, error)

	// UpsertByExternalID inserts the transaction unless one with the same
	// external ID already exists on the account, returning the stored row
	// either way. Webhook ingestion relies on this for redelivery.
	UpsertByExternalID(ctx context.Context, transaction *entity.Transaction) (*entity.Transaction, error)

	// MarkIncome flags a transaction as matched income.
	MarkIncome(ctx context.Context, id uuid.UUID, incomeType *string) error
}

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// GetByID retrieves an account by ID.
	// Returns domain ErrAccountNotFound when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// GetByExternalID resolves the account a webhook payload refers to.
	GetByExternalID(ctx context.Context, externalID string) (*entity.Account, error)

	// ListByPartnership retrieves all accounts owned by a partnership.
	ListByPartnership(ctx context.Context, partnershipID uuid.UUID) ([]*entity.Account, error)
}
