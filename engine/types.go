package engine

import (
	"time"

	"github.com/dosecron/dosecron/holiday"
)

// DateEntry is one generated date. Created fresh per run and never mutated;
// a config change regenerates the whole sequence.
type DateEntry struct {
	// Date is the final calendar day, after any relocation.
	Date       time.Time
	DateString string

	// IntervalNumber is the 1-based slot number.
	IntervalNumber int

	// Exclusion metadata for the final date. With exclusions active these
	// are false unless relocation was exhausted.
	IsWeekend bool
	IsHoliday bool
	Holiday   *holiday.Record

	// OriginalDate is the theoretical slot date before relocation.
	OriginalDate time.Time
	WasRelocated bool

	// RelocationExhausted marks a date that could not find a valid day
	// within the attempt bound and was emitted as-is.
	RelocationExhausted bool
}

// Summary aggregates a generated sequence, mirroring what a caller would
// show next to the list.
type Summary struct {
	Total       int
	WorkingDays int
	Weekends    int
	Holidays    int
	FirstDate   time.Time
	LastDate    time.Time
}

// Summarize computes totals over a generated sequence. Returns nil for an
// empty sequence.
func Summarize(entries []DateEntry) *Summary {
	if len(entries) == 0 {
		return nil
	}

	s := &Summary{
		Total:     len(entries),
		FirstDate: entries[0].Date,
		LastDate:  entries[len(entries)-1].Date,
	}
	for _, e := range entries {
		if e.IsWeekend {
			s.Weekends++
		}
		if e.IsHoliday {
			s.Holidays++
		}
		if !e.IsWeekend && !e.IsHoliday {
			s.WorkingDays++
		}
	}
	return s
}
