package holiday

import (
	"context"
	"fmt"
)

// Source fetches the public holidays of a country for one year. It may fail
// or time out; callers should treat failures as recoverable. Callers go
// through Cache.FetchAndCache, which guarantees at most one fetch per
// (country, year) pair between invalidations.
type Source interface {
	Fetch(ctx context.Context, year int, countryCode string) ([]Record, error)
}

// FetchError reports a failed holiday lookup for one country/year pair.
type FetchError struct {
	CountryCode string
	Year        int
	Err         error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching holidays for %s %d: %v", e.CountryCode, e.Year, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
