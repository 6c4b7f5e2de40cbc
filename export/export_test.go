package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosecron/dosecron/engine"
	"github.com/dosecron/dosecron/holiday"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(n int, date time.Time) engine.DateEntry {
	return engine.DateEntry{
		Date:           date,
		DateString:     date.Format("2006-01-02"),
		IntervalNumber: n,
		OriginalDate:   date,
	}
}

func uniformEntries() []engine.DateEntry {
	return []engine.DateEntry{
		entry(1, day(2025, time.January, 1)),
		entry(2, day(2025, time.January, 8)),
		entry(3, day(2025, time.January, 15)),
	}
}

func relocatedEntries() []engine.DateEntry {
	moved := engine.DateEntry{
		Date:           day(2025, time.January, 6),
		DateString:     "2025-01-06",
		IntervalNumber: 1,
		OriginalDate:   day(2025, time.January, 4),
		WasRelocated:   true,
	}
	second := entry(2, day(2025, time.January, 13))
	second.OriginalDate = day(2025, time.January, 11)
	second.WasRelocated = true
	third := entry(3, day(2025, time.January, 20))
	third.Holiday = &holiday.Record{Date: "2025-01-20", Name: "Some Day", LocalName: "Algún Día", CountryCode: "CR"}
	third.IsHoliday = true
	return []engine.DateEntry{moved, second, third}
}

func testMeta() Meta {
	return Meta{
		Title:        "Dose schedule",
		CountryCode:  "CR",
		IntervalDays: 7,
		GeneratedAt:  time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"ics", "CSV", " json ", "XML"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestICalendar_UniformUsesRRule(t *testing.T) {
	out, err := ICalendar(uniformEntries(), testMeta())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"),
		"a uniform schedule collapses into one recurring event")
	assert.Contains(t, out, "RRULE:")
	assert.Contains(t, out, "FREQ=DAILY")
	assert.Contains(t, out, "INTERVAL=7")
	assert.Contains(t, out, "COUNT=3")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250101")
	assert.Contains(t, out, "SUMMARY:Dose schedule")
}

func TestICalendar_RelocatedEmitsPerDateEvents(t *testing.T) {
	out, err := ICalendar(relocatedEntries(), testMeta())
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT"))
	assert.NotContains(t, out, "RRULE")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250106")
	assert.Contains(t, out, "Moved from 2025-01-04")
}

func TestICalendar_Empty(t *testing.T) {
	out, err := ICalendar(nil, testMeta())
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}

func TestCSV(t *testing.T) {
	out, err := CSV(relocatedEntries())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, "header plus one row per entry")
	assert.Equal(t, "interval_number,date,original_date,relocated,weekend,holiday,holiday_name", lines[0])
	assert.Equal(t, "1,2025-01-06,2025-01-04,true,false,false,", lines[1])
	assert.Contains(t, lines[3], "Some Day")
}

func TestJSON(t *testing.T) {
	out, err := JSON(relocatedEntries(), testMeta())
	require.NoError(t, err)

	var doc struct {
		Title   string `json:"title"`
		Country string `json:"countryCode"`
		Dates   []struct {
			IntervalNumber int    `json:"intervalNumber"`
			Date           string `json:"date"`
			Relocated      bool   `json:"relocated"`
			HolidayName    string `json:"holidayName"`
		} `json:"dates"`
		Summary *struct {
			Total    int `json:"total"`
			Holidays int `json:"holidays"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "Dose schedule", doc.Title)
	assert.Equal(t, "CR", doc.Country)
	require.Len(t, doc.Dates, 3)
	assert.True(t, doc.Dates[0].Relocated)
	assert.Equal(t, "Some Day", doc.Dates[2].HolidayName)
	require.NotNil(t, doc.Summary)
	assert.Equal(t, 3, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Holidays)
}

func TestXML(t *testing.T) {
	out, err := XML(relocatedEntries(), testMeta())
	require.NoError(t, err)

	assert.Contains(t, out, `<schedule title="Dose schedule" country="CR"`)
	assert.Contains(t, out, `<dates count="3">`)
	assert.Contains(t, out, `value="2025-01-06"`)
	assert.Contains(t, out, `originalDate="2025-01-04"`)
	assert.Contains(t, out, `<holiday name="Some Day">`)
}

func TestRender_Dispatch(t *testing.T) {
	entries := uniformEntries()
	meta := testMeta()

	for _, f := range []Format{FormatICS, FormatCSV, FormatJSON, FormatXML} {
		out, err := Render(f, entries, meta)
		require.NoError(t, err, string(f))
		assert.NotEmpty(t, out, string(f))
	}

	_, err := Render("pdf", entries, meta)
	assert.Error(t, err)
}
