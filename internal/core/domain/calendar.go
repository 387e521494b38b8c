package domain

import "time"

// StartOfDayUTC truncates t to UTC midnight. All calendar comparisons in the
// ledgers run on these normalised dates.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthWindowUTC returns the half-open window [first-of-month, first-of-next)
// for the given year and month.
func MonthWindowUTC(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthWindowFor returns the calendar-month window containing t.
func MonthWindowFor(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	return MonthWindowUTC(t.Year(), t.Month())
}
