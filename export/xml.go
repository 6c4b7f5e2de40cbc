package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/dosecron/dosecron/engine"
)

// XML renders the sequence as an XML document.
func XML(entries []engine.DateEntry, meta Meta) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("schedule")
	root.CreateAttr("title", meta.title())
	if meta.CountryCode != "" {
		root.CreateAttr("country", meta.CountryCode)
	}
	root.CreateAttr("generatedAt", meta.generatedAt().Format(time.RFC3339))

	dates := root.CreateElement("dates")
	dates.CreateAttr("count", strconv.Itoa(len(entries)))

	for _, e := range entries {
		el := dates.CreateElement("date")
		el.CreateAttr("slot", strconv.Itoa(e.IntervalNumber))
		el.CreateAttr("value", e.DateString)
		if e.WasRelocated {
			el.CreateAttr("originalDate", e.OriginalDate.Format("2006-01-02"))
		}
		if e.IsWeekend {
			el.CreateAttr("weekend", "true")
		}
		if e.Holiday != nil {
			h := el.CreateElement("holiday")
			h.CreateAttr("name", e.Holiday.Name)
			h.SetText(e.Holiday.LocalName)
		}
	}

	if s := engine.Summarize(entries); s != nil {
		sum := root.CreateElement("summary")
		sum.CreateAttr("workingDays", strconv.Itoa(s.WorkingDays))
		sum.CreateAttr("weekends", strconv.Itoa(s.Weekends))
		sum.CreateAttr("holidays", strconv.Itoa(s.Holidays))
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to serialize schedule: %w", err)
	}
	return out, nil
}
