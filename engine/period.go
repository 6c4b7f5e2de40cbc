package engine

import (
	"fmt"
	"time"

	"github.com/dosecron/dosecron/internal/datemath"
)

// ResolveEndDate converts a start date, duration and unit into the exclusive
// upper bound of the generated period. Month and year addition are
// calendar-aware: the day of month is preserved where possible and clamped
// to the shorter target month (Jan 31 + 1 month = Feb 28/29).
func ResolveEndDate(start time.Time, duration int, unit DurationUnit) (time.Time, error) {
	start = datemath.Truncate(start)

	switch unit {
	case UnitDays:
		return datemath.AddDays(start, duration), nil
	case UnitWeeks:
		return datemath.AddDays(start, duration*7), nil
	case UnitMonths:
		return datemath.AddMonths(start, duration), nil
	case UnitYears:
		return datemath.AddYears(start, duration), nil
	default:
		return time.Time{}, &Error{
			Kind:    KindConfiguration,
			Message: fmt.Sprintf("unknown duration unit %q", string(unit)),
		}
	}
}
