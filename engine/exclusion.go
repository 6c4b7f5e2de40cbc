package engine

import (
	"time"

	"github.com/dosecron/dosecron/holiday"
	"github.com/dosecron/dosecron/internal/datemath"
)

// Evaluation is the result of checking one calendar date against the
// configured exclusion rules.
type Evaluation struct {
	IsWeekend     bool
	IsHoliday     bool
	Holiday       *holiday.Record
	ShouldExclude bool
}

// Evaluate checks whether date must be excluded under the given config. The
// holiday index must already cover every year of the period; evaluation
// performs no cache or network I/O.
func Evaluate(date time.Time, index holiday.Index, cfg RecurrenceConfig) Evaluation {
	weekend := datemath.IsWeekend(date)

	var matched *holiday.Record
	if rec, ok := index.Lookup(date); ok {
		matched = &rec
	}

	return Evaluation{
		IsWeekend:     weekend,
		IsHoliday:     matched != nil,
		Holiday:       matched,
		ShouldExclude: (cfg.ExcludeWeekends && weekend) || (cfg.ExcludeHolidays && matched != nil),
	}
}
