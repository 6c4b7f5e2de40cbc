package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/dosecron/dosecron/engine"
)

const icalProductID = "-//DoseCron//Go Scheduler//EN"

// ICalendar renders the sequence as a VCALENDAR of all-day events. A uniform
// schedule becomes a single VEVENT with an RRULE; a schedule with relocated
// dates becomes one VEVENT per date, since the relocations make it
// inexpressible as a recurrence rule.
func ICalendar(entries []engine.DateEntry, meta Meta) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icalProductID)

	stamp := meta.generatedAt()

	if len(entries) > 0 && uniform(entries) && meta.IntervalDays > 0 {
		event, err := recurringEvent(entries, meta, stamp)
		if err != nil {
			return "", err
		}
		cal.Children = append(cal.Children, event)
	} else {
		for _, e := range entries {
			cal.Children = append(cal.Children, singleEvent(e, meta, stamp))
		}
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.String(), nil
}

// recurringEvent builds one VEVENT carrying the whole schedule as a daily
// RRULE with the configured interval.
func recurringEvent(entries []engine.DateEntry, meta Meta, stamp time.Time) (*ical.Component, error) {
	first := entries[0]

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: meta.IntervalDays,
		Count:    len(entries),
		Dtstart:  first.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	event := ical.NewComponent(ical.CompEvent)
	event.Props.SetText(ical.PropUID, uuid.NewString())
	event.Props.SetText(ical.PropSummary, meta.title())
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	event.Props.Set(dateProp(ical.PropDateTimeStart, first.Date))

	// Raw value: SetText would escape the semicolons.
	rruleProp := ical.NewProp(ical.PropRecurrenceRule)
	rruleProp.Value = rule.OrigOptions.RRuleString()
	event.Props.Set(rruleProp)

	return event, nil
}

func singleEvent(e engine.DateEntry, meta Meta, stamp time.Time) *ical.Component {
	event := ical.NewComponent(ical.CompEvent)
	event.Props.SetText(ical.PropUID, uuid.NewString())
	event.Props.SetText(ical.PropSummary, fmt.Sprintf("%s %d", meta.title(), e.IntervalNumber))
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	event.Props.Set(dateProp(ical.PropDateTimeStart, e.Date))

	if e.WasRelocated {
		event.Props.SetText(ical.PropDescription,
			fmt.Sprintf("Moved from %s", e.OriginalDate.Format("2006-01-02")))
	}
	return event
}

// dateProp builds an all-day date property (VALUE=DATE).
func dateProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.SetValueType(ical.ValueDate)
	p.Value = t.Format("20060102")
	return p
}
