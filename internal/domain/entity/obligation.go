// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pairfin/backend/internal/domain/valueobject"
)

// ObligationKind distinguishes expected payments from expected income.
type ObligationKind string

const (
	ObligationKindExpense ObligationKind = "expense"
	ObligationKindIncome  ObligationKind = "income"
)

// Obligation is a recurring (or one-time) expected payment or income source
// declared by a partnership: rent, subscriptions, utilities, salary. It is
// matched against bank transactions by merchant-name containment, amount
// tolerance and date proximity rather than a stable foreign key.
type Obligation struct {
	ID              uuid.UUID
	PartnershipID   uuid.UUID
	Name            string  // merchant text fragment, e.g. "Netflix"
	MerchantPattern *string // optional wildcard pattern, e.g. "NETFLIX*"
	ExpectedAmount  *decimal.Decimal
	Recurrence      valueobject.Recurrence
	NextDue         time.Time // mutated only by due-date advancement and user edits
	Kind            ObligationKind
	Active          bool
	IncomeType      *string // e.g. "salary"; applied to matched income transactions
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewObligation creates a new Obligation entity.
func NewObligation(
	partnershipID uuid.UUID,
	name string,
	merchantPattern *string,
	expectedAmount *decimal.Decimal,
	recurrence valueobject.Recurrence,
	nextDue time.Time,
	kind ObligationKind,
) *Obligation {
	now := time.Now().UTC()

	return &Obligation{
		ID:              uuid.New(),
		PartnershipID:   partnershipID,
		Name:            name,
		MerchantPattern: merchantPattern,
		ExpectedAmount:  expectedAmount,
		Recurrence:      recurrence,
		NextDue:         nextDue,
		Kind:            kind,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasMatchCriteria reports whether the obligation carries any merchant
// identifier to match on. Obligations without one cannot be reconciled.
func (o *Obligation) HasMatchCriteria() bool {
	if o.MerchantPattern != nil && *o.MerchantPattern != "" {
		return true
	}
	return o.Name != ""
}

// MerchantIdentifier returns the text fragment used for candidate selection.
// Wildcard patterns belong to the weighted scorer; for substring containment
// the obligation name wins, falling back to the pattern with wildcards
// stripped out.
func (o *Obligation) MerchantIdentifier() string {
	if o.Name != "" {
		return o.Name
	}
	if o.MerchantPattern != nil {
		return strings.ReplaceAll(*o.MerchantPattern, "*", "")
	}
	return ""
}
