// Package valueobject contains domain value objects for the PairFin system.
package valueobject

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreConfidence(t *testing.T) {
	due := day(2026, time.March, 1)
	pattern := "NETFLIX*"

	tests := []struct {
		name         string
		in           ConfidenceInput
		wantMerchant float64
		wantAmount   float64
		wantTiming   float64
	}{
		{
			name: "pattern match with exact amount on the due date",
			in: ConfidenceInput{
				Description:     "NETFLIX.COM",
				Amount:          dec("-17.99"),
				Date:            due,
				MerchantName:    "Netflix",
				MerchantPattern: &pattern,
				ExpectedAmount:  decPtr("17.99"),
				NextDue:         due,
			},
			wantMerchant: 0.4,
			wantAmount:   0.4,
			wantTiming:   0.2,
		},
		{
			name: "substring fallback when the pattern misses",
			in: ConfidenceInput{
				Description:     "PAYPAL *NETFLIX SUBSCRIPTION",
				Amount:          dec("-17.99"),
				Date:            due,
				MerchantName:    "Netflix",
				MerchantPattern: &pattern,
				ExpectedAmount:  decPtr("17.99"),
				NextDue:         due,
			},
			wantMerchant: 0.2,
			wantAmount:   0.4,
			wantTiming:   0.2,
		},
		{
			name: "no merchant signal short-circuits to zero",
			in: ConfidenceInput{
				Description:    "ALBERT HEIJN 1482",
				Amount:         dec("-17.99"),
				Date:           due,
				MerchantName:   "Netflix",
				ExpectedAmount: decPtr("17.99"),
				NextDue:        due,
			},
			wantMerchant: 0,
			wantAmount:   0,
			wantTiming:   0,
		},
		{
			name: "mid-range amount deviation and a fortnight gap",
			in: ConfidenceInput{
				Description:    "NETFLIX.COM",
				Amount:         dec("-20.99"), // ~17% off
				Date:           due.AddDate(0, 0, -14),
				MerchantName:   "Netflix",
				ExpectedAmount: decPtr("17.99"),
				NextDue:        due,
			},
			wantMerchant: 0.2,
			wantAmount:   0.2,
			wantTiming:   0.05,
		},
		{
			name: "no expected amount drops the amount signal",
			in: ConfidenceInput{
				Description:  "NETFLIX.COM",
				Amount:       dec("-17.99"),
				Date:         due,
				MerchantName: "Netflix",
				NextDue:      due,
			},
			wantMerchant: 0.2,
			wantAmount:   0,
			wantTiming:   0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreConfidence(tt.in)

			if !almostEqual(got.Merchant, tt.wantMerchant) {
				t.Errorf("merchant: expected %v, got %v", tt.wantMerchant, got.Merchant)
			}
			if !almostEqual(got.Amount, tt.wantAmount) {
				t.Errorf("amount: expected %v, got %v", tt.wantAmount, got.Amount)
			}
			if !almostEqual(got.Timing, tt.wantTiming) {
				t.Errorf("timing: expected %v, got %v", tt.wantTiming, got.Timing)
			}

			wantTotal := tt.wantMerchant + tt.wantAmount + tt.wantTiming
			if wantTotal > 1.0 {
				wantTotal = 1.0
			}
			if !almostEqual(got.Total, wantTotal) {
				t.Errorf("total: expected %v, got %v", wantTotal, got.Total)
			}
		})
	}
}

func TestAmountSignalBands(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		amount   string
		want     float64
	}{
		{"exact", "100", "-100", 0.4},
		{"5 percent off", "100", "-105", 0.4},
		{"10 percent off", "100", "-110", 0.3},
		{"20 percent off", "100", "-120", 0.2},
		{"50 percent off", "100", "-150", 0.1},
		{"beyond 50 percent", "100", "-151", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := amountSignal(decPtr(tt.expected), dec(tt.amount)); !almostEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTimingSignalBands(t *testing.T) {
	due := day(2026, time.March, 15)

	tests := []struct {
		name string
		date time.Time
		want float64
	}{
		{"same day", due, 0.2},
		{"one day off", due.AddDate(0, 0, 1), 0.2},
		{"three days off", due.AddDate(0, 0, -3), 0.15},
		{"a week off", due.AddDate(0, 0, 7), 0.1},
		{"two weeks off", due.AddDate(0, 0, -14), 0.05},
		{"a month off", due.AddDate(0, 1, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timingSignal(tt.date, due); !almostEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMatchWildcard(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"NETFLIX*", "netflix.com amsterdam", true},
		{"NETFLIX*", "paypal netflix", false},
		{"*NETFLIX*", "paypal netflix subscription", true},
		{"AMZN*PRIME", "amzn mktp prime", true},
		{"AMZN*PRIME", "amzn mktp", false},
		{"NETFLIX", "netflix", true},
		{"NETFLIX", "netflix.com", false},
		{"", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.s, func(t *testing.T) {
			if got := matchWildcard(tt.pattern, tt.s); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
