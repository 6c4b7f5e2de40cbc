// Package export renders a generated date sequence in the formats the
// surrounding application ships: iCalendar, CSV, JSON and XML.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/dosecron/dosecron/engine"
)

// Format selects an output format.
type Format string

const (
	FormatICS  Format = "ics"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatICS:
		return FormatICS, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want ics, csv, json or xml)", s)
	}
}

// Meta carries schedule-level context into the rendered output.
type Meta struct {
	// Title labels the schedule (calendar name, event summaries).
	Title string
	// CountryCode is the holiday calendar used, if any.
	CountryCode string
	// IntervalDays is the configured spacing, used to render an RRULE for
	// uniform schedules.
	IntervalDays int
	// GeneratedAt stamps the output; zero means time.Now.
	GeneratedAt time.Time
}

func (m Meta) title() string {
	if m.Title == "" {
		return "Recurring schedule"
	}
	return m.Title
}

func (m Meta) generatedAt() time.Time {
	if m.GeneratedAt.IsZero() {
		return time.Now().UTC()
	}
	return m.GeneratedAt
}

// Render renders entries in the given format.
func Render(format Format, entries []engine.DateEntry, meta Meta) (string, error) {
	switch format {
	case FormatICS:
		return ICalendar(entries, meta)
	case FormatCSV:
		return CSV(entries)
	case FormatJSON:
		return JSON(entries, meta)
	case FormatXML:
		return XML(entries, meta)
	default:
		return "", fmt.Errorf("unknown export format %q", string(format))
	}
}

// uniform reports whether the sequence is a pure fixed-interval progression,
// with no relocated dates. Only uniform schedules can be expressed as a
// single recurrence rule.
func uniform(entries []engine.DateEntry) bool {
	for _, e := range entries {
		if e.WasRelocated {
			return false
		}
	}
	return true
}
