// Package holiday provides public-holiday records, a TTL cache keyed by
// country and year, and an HTTP source backed by the Nager.Date API.
package holiday

import (
	"time"
)

// DateLayout is the ISO calendar-day format used for holiday dates and
// index keys.
const DateLayout = "2006-01-02"

// Record is a single public holiday as returned by a Source. Immutable once
// created; Date is an ISO calendar day (yyyy-mm-dd).
type Record struct {
	Date        string
	LocalName   string
	Name        string
	CountryCode string
}

// Day parses the record's date as a calendar day at midnight UTC.
func (r Record) Day() (time.Time, error) {
	return time.ParseInLocation(DateLayout, r.Date, time.UTC)
}

// Index is an exact-date lookup over a set of holiday records, keyed by ISO
// date string. Built once per generation run, read-only afterwards.
type Index map[string]Record

// BuildIndex merges the given record lists into a single exact-date index.
// Later lists win on date collisions.
func BuildIndex(lists ...[]Record) Index {
	ix := make(Index)
	for _, list := range lists {
		for _, r := range list {
			ix[r.Date] = r
		}
	}
	return ix
}

// Lookup returns the holiday falling on the given calendar day, if any.
func (ix Index) Lookup(day time.Time) (Record, bool) {
	r, ok := ix[day.Format(DateLayout)]
	return r, ok
}
