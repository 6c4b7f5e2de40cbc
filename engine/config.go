// Package engine computes deterministic sequences of recurring calendar
// dates from an anchor date, a fixed interval and a bounded duration, with
// optional relocation of dates past weekends and public holidays. The number
// of generated dates depends only on the period and the interval; exclusion
// filters move dates forward but never change how many there are.
package engine

import (
	"fmt"
	"time"
)

// DurationUnit is the unit of a configuration's total duration.
type DurationUnit string

const (
	UnitDays   DurationUnit = "days"
	UnitWeeks  DurationUnit = "weeks"
	UnitMonths DurationUnit = "months"
	UnitYears  DurationUnit = "years"
)

// IntervalUnit is the unit of the spacing between generated dates. Weeks and
// months convert to days before any calculation.
type IntervalUnit string

const (
	IntervalDays   IntervalUnit = "days"
	IntervalWeeks  IntervalUnit = "weeks"
	IntervalMonths IntervalUnit = "months"
)

// Validation limits for interval (in days, after unit conversion) and
// duration.
const (
	MinInterval = 1
	MaxInterval = 365
	MinDuration = 1
	MaxDuration = 100
)

// RecurrenceConfig describes one generation run. Immutable once passed to
// Generate; results are discarded and regenerated on any change rather than
// updated incrementally.
type RecurrenceConfig struct {
	// StartDate is the anchor date in yyyy-mm-dd form.
	StartDate string

	// Interval is the spacing between dates, in IntervalUnit units.
	Interval     int
	IntervalUnit IntervalUnit

	// Duration bounds the generated period, exclusive of the end date.
	Duration     int
	DurationUnit DurationUnit

	ExcludeWeekends bool
	ExcludeHolidays bool

	// CountryCode selects the holiday calendar. Without it, holiday
	// exclusion silently has no effect.
	CountryCode string
}

// DefaultConfig returns a config with the reference defaults: monthly
// duration, both exclusions enabled, interval in days. Interval and Duration
// have no default and must be set.
func DefaultConfig() RecurrenceConfig {
	return RecurrenceConfig{
		IntervalUnit:    IntervalDays,
		DurationUnit:    UnitMonths,
		ExcludeWeekends: true,
		ExcludeHolidays: true,
	}
}

// IntervalDays converts the configured interval to whole days. Weeks count 7
// days, months 30.
func (c RecurrenceConfig) IntervalDays() int {
	switch c.IntervalUnit {
	case IntervalWeeks:
		return c.Interval * 7
	case IntervalMonths:
		return c.Interval * 30
	default:
		return c.Interval
	}
}

// Validate checks every rule and reports all failures as one aggregated
// validation error. The parsed start date is returned on success.
//
// ExcludeHolidays without a country code is deliberately not a failure; the
// generator treats it as a no-op and warns.
func (c RecurrenceConfig) Validate() (time.Time, error) {
	var errs []error

	var start time.Time
	if c.StartDate == "" {
		errs = append(errs, ErrInvalidDate)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", c.StartDate, time.UTC)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDate, c.StartDate))
		} else {
			start = parsed
		}
	}

	if d := c.IntervalDays(); d < MinInterval || d > MaxInterval {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrIntervalRange, d))
	}

	if c.Duration < MinDuration || c.Duration > MaxDuration {
		errs = append(errs, fmt.Errorf("%w, got %d", ErrDurationRange, c.Duration))
	}

	switch c.DurationUnit {
	case UnitDays, UnitWeeks, UnitMonths, UnitYears:
	default:
		errs = append(errs, fmt.Errorf("%w, got %q", ErrInvalidUnit, string(c.DurationUnit)))
	}

	if len(errs) > 0 {
		return time.Time{}, newValidationError(errs)
	}
	return start, nil
}
