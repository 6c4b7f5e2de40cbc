package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dosecron/dosecron/engine"
)

type jsonDate struct {
	IntervalNumber int    `json:"intervalNumber"`
	Date           string `json:"date"`
	OriginalDate   string `json:"originalDate"`
	Relocated      bool   `json:"relocated"`
	Weekend        bool   `json:"weekend"`
	Holiday        bool   `json:"holiday"`
	HolidayName    string `json:"holidayName,omitempty"`
}

type jsonSummary struct {
	Total       int    `json:"total"`
	WorkingDays int    `json:"workingDays"`
	Weekends    int    `json:"weekends"`
	Holidays    int    `json:"holidays"`
	FirstDate   string `json:"firstDate"`
	LastDate    string `json:"lastDate"`
}

type jsonSchedule struct {
	Title       string       `json:"title"`
	CountryCode string       `json:"countryCode,omitempty"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Dates       []jsonDate   `json:"dates"`
	Summary     *jsonSummary `json:"summary,omitempty"`
}

// JSON renders the sequence and its summary as indented JSON.
func JSON(entries []engine.DateEntry, meta Meta) (string, error) {
	doc := jsonSchedule{
		Title:       meta.title(),
		CountryCode: meta.CountryCode,
		GeneratedAt: meta.generatedAt(),
		Dates:       make([]jsonDate, 0, len(entries)),
	}

	for _, e := range entries {
		d := jsonDate{
			IntervalNumber: e.IntervalNumber,
			Date:           e.DateString,
			OriginalDate:   e.OriginalDate.Format("2006-01-02"),
			Relocated:      e.WasRelocated,
			Weekend:        e.IsWeekend,
			Holiday:        e.IsHoliday,
		}
		if e.Holiday != nil {
			d.HolidayName = e.Holiday.Name
		}
		doc.Dates = append(doc.Dates, d)
	}

	if s := engine.Summarize(entries); s != nil {
		doc.Summary = &jsonSummary{
			Total:       s.Total,
			WorkingDays: s.WorkingDays,
			Weekends:    s.Weekends,
			Holidays:    s.Holidays,
			FirstDate:   s.FirstDate.Format("2006-01-02"),
			LastDate:    s.LastDate.Format("2006-01-02"),
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schedule: %w", err)
	}
	return string(out), nil
}
