package engine

import (
	"time"

	"github.com/dosecron/dosecron/internal/datemath"
)

// CountDates returns the exact number of dates generated for the half-open
// period [start, end) at the given interval: floor(totalDays / intervalDays).
//
// The count is exclusion-independent. Weekend and holiday filters relocate a
// date forward within its theoretical slot; they never add or remove slots.
// Slot i (0-indexed) sits at offset i*intervalDays from the start, and
// offset 0 always counts as the first slot whenever the result is positive.
func CountDates(start, end time.Time, intervalDays int) int {
	if intervalDays <= 0 {
		return 0
	}
	totalDays := datemath.DaysBetween(start, end)
	if totalDays <= 0 {
		return 0
	}
	return totalDays / intervalDays
}
