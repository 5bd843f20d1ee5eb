// Package valueobject contains domain value objects for the PairFin system.
package valueobject

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Signal weights for the weighted scorer. Merchant and amount dominate;
// timing is a tie-breaker.
const (
	merchantPatternWeight   = 0.4
	merchantSubstringWeight = 0.2
	amountWeightMax         = 0.4
	timingWeightMax         = 0.2
)

// ConfidenceInput pairs one transaction with one obligation candidate for
// weighted scoring.
type ConfidenceInput struct {
	Description     string
	Amount          decimal.Decimal // signed; expenses negative
	Date            time.Time
	MerchantName    string
	MerchantPattern *string // optional wildcard pattern, e.g. "NETFLIX*"
	ExpectedAmount  *decimal.Decimal
	NextDue         time.Time
}

// ConfidenceBreakdown is the per-signal decomposition of a weighted score.
type ConfidenceBreakdown struct {
	Merchant float64
	Amount   float64
	Timing   float64
	Total    float64
}

// ScoreConfidence computes a 0.0-1.0 match confidence from three independent
// signals. It is deliberately distinct from the binary merchant+tolerance
// gate used by the reconciliation paths: this scorer ranks suggestions
// against MinSuggestionConfidence, it does not decide persistence. Without
// any merchant signal the score is zero; amount and timing alone never
// establish a match.
func ScoreConfidence(in ConfidenceInput) ConfidenceBreakdown {
	var b ConfidenceBreakdown

	switch {
	case in.MerchantPattern != nil && matchWildcard(*in.MerchantPattern, in.Description):
		b.Merchant = merchantPatternWeight
	case containsEitherWay(in.MerchantName, in.Description):
		b.Merchant = merchantSubstringWeight
	default:
		return b
	}

	b.Amount = amountSignal(in.ExpectedAmount, in.Amount)
	b.Timing = timingSignal(in.Date, in.NextDue)

	b.Total = b.Merchant + b.Amount + b.Timing
	if b.Total > 1.0 {
		b.Total = 1.0
	}
	return b
}

// amountSignal bands the relative deviation of |amount| from expected.
func amountSignal(expected *decimal.Decimal, amount decimal.Decimal) float64 {
	if expected == nil || expected.IsZero() {
		return 0
	}
	exp := expected.Abs()
	deviation, _ := amount.Abs().Sub(exp).Abs().Div(exp).Float64()

	switch {
	case deviation <= 0.05:
		return amountWeightMax
	case deviation <= 0.10:
		return 0.3
	case deviation <= 0.20:
		return 0.2
	case deviation <= 0.50:
		return 0.1
	default:
		return 0
	}
}

// timingSignal bands the absolute day distance from the current due date.
func timingSignal(date, due time.Time) float64 {
	days := daysBetween(date, due)

	switch {
	case days <= 1:
		return timingWeightMax
	case days <= 3:
		return 0.15
	case days <= 7:
		return 0.1
	case days <= 14:
		return 0.05
	default:
		return 0
	}
}

// daysBetween returns the absolute distance in calendar days.
func daysBetween(a, b time.Time) int {
	a = midnight(a)
	b = midnight(b)
	hours := math.Abs(a.Sub(b).Hours())
	return int(math.Round(hours / 24))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// containsEitherWay reports case-insensitive substring containment in either
// direction: the merchant name inside the description, or the description
// inside the merchant name.
func containsEitherWay(merchant, description string) bool {
	merchant = strings.ToLower(strings.TrimSpace(merchant))
	description = strings.ToLower(strings.TrimSpace(description))
	if merchant == "" || description == "" {
		return false
	}
	return strings.Contains(description, merchant) || strings.Contains(merchant, description)
}

// matchWildcard matches s against a case-insensitive pattern where '*'
// matches any run of characters.
func matchWildcard(pattern, s string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	s = strings.ToLower(strings.TrimSpace(s))
	if pattern == "" {
		return false
	}

	segments := strings.Split(pattern, "*")

	// No wildcard: exact match.
	if len(segments) == 1 {
		return s == pattern
	}

	if !strings.HasPrefix(s, segments[0]) {
		return false
	}
	s = s[len(segments[0]):]

	last := segments[len(segments)-1]
	middle := segments[1 : len(segments)-1]

	for _, seg := range middle {
		if seg == "" {
			continue
		}
		idx := strings.Index(s, seg)
		if idx < 0 {
			return false
		}
		s = s[idx+len(seg):]
	}

	return strings.HasSuffix(s, last)
}
