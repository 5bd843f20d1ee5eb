// Package valueobject contains domain value objects for the PairFin system.
package valueobject

import (
	"testing"
	"time"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestRecurrence_Valid(t *testing.T) {
	for _, r := range []Recurrence{
		RecurrenceWeekly, RecurrenceFortnightly, RecurrenceMonthly,
		RecurrenceQuarterly, RecurrenceYearly, RecurrenceOneTime,
	} {
		if !r.Valid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if Recurrence("biweekly").Valid() {
		t.Error("expected unknown recurrence to be invalid")
	}
}

func TestRecurrence_PeriodStart(t *testing.T) {
	tests := []struct {
		name       string
		recurrence Recurrence
		date       time.Time
		want       time.Time
	}{
		{
			name:       "monthly truncates to the first",
			recurrence: RecurrenceMonthly,
			date:       day(2026, time.March, 17),
			want:       day(2026, time.March, 1),
		},
		{
			name:       "weekly starts on the ISO Monday",
			recurrence: RecurrenceWeekly,
			date:       day(2026, time.March, 5), // Thursday
			want:       day(2026, time.March, 2), // Monday
		},
		{
			name:       "weekly on a Sunday belongs to the preceding Monday",
			recurrence: RecurrenceWeekly,
			date:       day(2026, time.March, 8),
			want:       day(2026, time.March, 2),
		},
		{
			name:       "weekly on a Monday is its own start",
			recurrence: RecurrenceWeekly,
			date:       day(2026, time.March, 2),
			want:       day(2026, time.March, 2),
		},
		{
			name:       "fortnightly uses the same week anchor",
			recurrence: RecurrenceFortnightly,
			date:       day(2026, time.March, 5),
			want:       day(2026, time.March, 2),
		},
		{
			name:       "quarterly truncates to the quarter month",
			recurrence: RecurrenceQuarterly,
			date:       day(2026, time.May, 20),
			want:       day(2026, time.April, 1),
		},
		{
			name:       "fourth quarter starts in October",
			recurrence: RecurrenceQuarterly,
			date:       day(2026, time.December, 31),
			want:       day(2026, time.October, 1),
		},
		{
			name:       "yearly truncates to January first",
			recurrence: RecurrenceYearly,
			date:       day(2026, time.August, 26),
			want:       day(2026, time.January, 1),
		},
		{
			name:       "one-time falls back to the monthly rule",
			recurrence: RecurrenceOneTime,
			date:       day(2026, time.March, 17),
			want:       day(2026, time.March, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.recurrence.PeriodStart(tt.date)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}

			// A period start is a fixed point.
			if again := tt.recurrence.PeriodStart(got); !again.Equal(got) {
				t.Errorf("expected PeriodStart to be idempotent, got %s then %s", got, again)
			}
		})
	}
}

func TestRecurrence_PeriodStartKeepsLocation(t *testing.T) {
	loc := time.FixedZone("AEST", 10*60*60)
	d := time.Date(2026, time.March, 1, 8, 30, 0, 0, loc)

	got := RecurrenceMonthly.PeriodStart(d)
	if got.Location() != loc {
		t.Errorf("expected the date's own location, got %s", got.Location())
	}
	// March 1st 08:30 AEST is still February in UTC; truncating locally must
	// keep it in March.
	if got.Month() != time.March || got.Day() != 1 {
		t.Errorf("expected 2026-03-01 local, got %s", got)
	}
}

func TestRecurrence_PeriodKey(t *testing.T) {
	if got := RecurrenceMonthly.PeriodKey(day(2026, time.March, 17)); got != "2026-03-01" {
		t.Errorf("expected 2026-03-01, got %s", got)
	}
	if got := RecurrenceWeekly.PeriodKey(day(2026, time.March, 5)); got != "2026-03-02" {
		t.Errorf("expected 2026-03-02, got %s", got)
	}
}

func TestRecurrence_Step(t *testing.T) {
	from := day(2026, time.January, 31)

	tests := []struct {
		recurrence Recurrence
		want       time.Time
	}{
		{RecurrenceWeekly, day(2026, time.February, 7)},
		{RecurrenceFortnightly, day(2026, time.February, 14)},
		// Go normalizes Jan 31 + 1 month to March 3 (2026 is not a leap year).
		{RecurrenceMonthly, day(2026, time.March, 3)},
		{RecurrenceQuarterly, day(2026, time.May, 1)},
		{RecurrenceYearly, day(2027, time.January, 31)},
		{RecurrenceOneTime, from},
	}

	for _, tt := range tests {
		t.Run(string(tt.recurrence), func(t *testing.T) {
			if got := tt.recurrence.Step(from); !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRecurrence_CatchUp(t *testing.T) {
	t.Run("collapses multiple missed periods", func(t *testing.T) {
		got := RecurrenceMonthly.CatchUp(day(2025, time.November, 1), day(2026, time.January, 15))
		if want := day(2026, time.February, 1); !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("already ahead stays put", func(t *testing.T) {
		next := day(2026, time.June, 1)
		got := RecurrenceMonthly.CatchUp(next, day(2026, time.March, 15))
		if !got.Equal(next) {
			t.Errorf("expected %s, got %s", next, got)
		}
	})

	t.Run("exactly on the due date steps once", func(t *testing.T) {
		got := RecurrenceMonthly.CatchUp(day(2026, time.March, 1), day(2026, time.March, 1))
		if want := day(2026, time.April, 1); !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("one-time never moves", func(t *testing.T) {
		next := day(2026, time.March, 1)
		got := RecurrenceOneTime.CatchUp(next, day(2030, time.January, 1))
		if !got.Equal(next) {
			t.Errorf("expected %s, got %s", next, got)
		}
	})
}
