// Package datemath provides timezone-naive calendar-day arithmetic.
//
// All functions operate on dates truncated to midnight UTC. Go's time.AddDate
// normalizes month overflow (Jan 31 + 1 month = Mar 2/3), which is the wrong
// behavior for calendar-aware duration math, so month and year addition here
// clamp to the last valid day of the target month instead.
package datemath

import "time"

// Truncate returns the calendar day of t at midnight UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Truncate(t).AddDate(0, 0, n)
}

// AddMonths returns t shifted by n months, with the day-of-month clamped to
// the shorter target month. Jan 31 + 1 month yields Feb 28 (or Feb 29 in a
// leap year), never Mar 2.
func AddMonths(t time.Time, n int) time.Time {
	t = Truncate(t)
	y, m, d := t.Date()

	// Normalize the target month without letting the day overflow.
	total := int(m) - 1 + n
	ty := y + total/12
	tm := total % 12
	if tm < 0 {
		tm += 12
		ty--
	}
	targetMonth := time.Month(tm + 1)

	if max := DaysInMonth(ty, targetMonth); d > max {
		d = max
	}
	return time.Date(ty, targetMonth, d, 0, 0, 0, 0, time.UTC)
}

// AddYears returns t shifted by n years. Feb 29 clamps to Feb 28 on non-leap
// target years.
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, n*12)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
