package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/dosecron/dosecron/engine"
)

// CSV renders the sequence as comma-separated rows with a header.
func CSV(entries []engine.DateEntry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"interval_number", "date", "original_date", "relocated", "weekend", "holiday", "holiday_name"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range entries {
		holidayName := ""
		if e.Holiday != nil {
			holidayName = e.Holiday.Name
		}
		row := []string{
			strconv.Itoa(e.IntervalNumber),
			e.DateString,
			e.OriginalDate.Format("2006-01-02"),
			strconv.FormatBool(e.WasRelocated),
			strconv.FormatBool(e.IsWeekend),
			strconv.FormatBool(e.IsHoliday),
			holidayName,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write csv row %d: %w", e.IntervalNumber, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return sb.String(), nil
}
