// Package valueobject contains domain value objects for the PairFin system.
package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountTolerancePercent is the band around an obligation's expected amount
// within which a transaction is still considered the same payment. It is
// defined exactly once and shared by the batch and webhook matching paths;
// the two paths diverging on tolerance has been a defect before.
const AmountTolerancePercent = 10

// MatchConfidence is the fixed confidence recorded on matches produced by
// the binary merchant+tolerance gate (both batch and webhook paths).
const MatchConfidence = 0.95

// MatchingConfig carries the tunable knobs of the matching engine.
type MatchingConfig struct {
	// AmountTolerancePercent is the +/- band around the expected amount,
	// e.g. 10 means [expected*0.90, expected*1.10].
	AmountTolerancePercent decimal.Decimal

	// MinSuggestionConfidence is the threshold the weighted scorer must
	// reach before a suggestion is surfaced.
	MinSuggestionConfidence float64

	// AdvanceGuardDays stops a webhook transaction dated more than this many
	// days before the obligation's next_due from fast-forwarding it. The 7
	// day default is policy, not a derived business rule.
	AdvanceGuardDays int
}

// DefaultMatchingConfig returns the engine defaults.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		AmountTolerancePercent:  decimal.NewFromInt(AmountTolerancePercent),
		MinSuggestionConfidence: 0.6,
		AdvanceGuardDays:        7,
	}
}

// AmountBounds returns the inclusive [min, max] band around expected.
func (c MatchingConfig) AmountBounds(expected decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	tol := c.AmountTolerancePercent.Div(decimal.NewFromInt(100))
	min := expected.Mul(decimal.NewFromInt(1).Sub(tol))
	max := expected.Mul(decimal.NewFromInt(1).Add(tol))
	return min, max
}

// WithinTolerance reports whether amount (the transaction's absolute value)
// falls inside the tolerance band. An obligation without an expected amount
// skips the gate entirely.
func (c MatchingConfig) WithinTolerance(expected *decimal.Decimal, amount decimal.Decimal) bool {
	if expected == nil || expected.IsZero() {
		return true
	}
	min, max := c.AmountBounds(expected.Abs())
	abs := amount.Abs()
	return abs.GreaterThanOrEqual(min) && abs.LessThanOrEqual(max)
}

// MerchantMatches reports whether the obligation's merchant identifier is
// textually contained in the transaction description, case-insensitively.
// This is the whole of the candidate-selection text criterion.
func MerchantMatches(merchant, description string) bool {
	merchant = strings.TrimSpace(merchant)
	if merchant == "" {
		return false
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(merchant))
}
