// Package valueobject contains domain value objects for the PairFin system.
package valueobject

import "time"

// Recurrence represents how often an obligation falls due.
type Recurrence string

const (
	RecurrenceWeekly      Recurrence = "weekly"
	RecurrenceFortnightly Recurrence = "fortnightly"
	RecurrenceMonthly     Recurrence = "monthly"
	RecurrenceQuarterly   Recurrence = "quarterly"
	RecurrenceYearly      Recurrence = "yearly"
	RecurrenceOneTime     Recurrence = "one-time"
)

// Valid reports whether r is one of the supported recurrence types.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceWeekly, RecurrenceFortnightly, RecurrenceMonthly,
		RecurrenceQuarterly, RecurrenceYearly, RecurrenceOneTime:
		return true
	}
	return false
}

// PeriodStart returns the first calendar day of the billing period containing
// date. The result is midnight in date's own location: billing periods are
// human concepts, and truncating in UTC shifts the date for positive-offset
// users. Weekly and fortnightly periods start on the Monday of the ISO week
// (a fortnight is disambiguated by the obligation's next_due anchor, not
// here). An unrecognized recurrence falls back to the monthly rule.
func (r Recurrence) PeriodStart(date time.Time) time.Time {
	loc := date.Location()
	year, month, day := date.Date()

	switch r {
	case RecurrenceWeekly, RecurrenceFortnightly:
		midnight := time.Date(year, month, day, 0, 0, 0, 0, loc)
		offset := int(midnight.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7 // Sunday
		}
		return midnight.AddDate(0, 0, -offset)
	case RecurrenceQuarterly:
		quarterMonth := time.Month((int(month)-1)/3*3 + 1)
		return time.Date(year, quarterMonth, 1, 0, 0, 0, 0, loc)
	case RecurrenceYearly:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	default:
		// monthly, one-time and anything unrecognized
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	}
}

// PeriodKey formats the billing period containing date as an ISO date string
// (YYYY-MM-DD), the canonical for_period value stored on matches.
func (r Recurrence) PeriodKey(date time.Time) string {
	return r.PeriodStart(date).Format("2006-01-02")
}

// Step returns the next occurrence after from. One-time obligations never
// advance.
func (r Recurrence) Step(from time.Time) time.Time {
	switch r {
	case RecurrenceWeekly:
		return from.AddDate(0, 0, 7)
	case RecurrenceFortnightly:
		return from.AddDate(0, 0, 14)
	case RecurrenceQuarterly:
		return from.AddDate(0, 3, 0)
	case RecurrenceYearly:
		return from.AddDate(1, 0, 0)
	case RecurrenceOneTime:
		return from
	default:
		return from.AddDate(0, 1, 0)
	}
}

// CatchUp repeatedly steps next forward until it exceeds through. A single
// late-arriving transaction thereby collapses any number of missed periods
// into one pointer move. The result is never earlier than next.
func (r Recurrence) CatchUp(next, through time.Time) time.Time {
	if r == RecurrenceOneTime {
		return next
	}
	for !next.After(through) {
		next = r.Step(next)
	}
	return next
}
