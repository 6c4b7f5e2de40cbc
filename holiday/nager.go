package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Nager.Date v3 API root.
	DefaultBaseURL = "https://date.nager.at/api/v3"

	// DefaultRequestTimeout bounds a single holiday request.
	DefaultRequestTimeout = 10 * time.Second

	minYear = 1900
	maxYear = 2100
)

// NagerClient fetches public holidays from the Nager.Date API. It implements
// Source.
type NagerClient struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewNagerClient creates a Nager.Date client. A nil http.Client gets a
// default with a 10 second timeout; a nil logger falls back to slog.Default.
func NewNagerClient(client *http.Client, logger *slog.Logger) *NagerClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultRequestTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NagerClient{client: client, baseURL: DefaultBaseURL, logger: logger}
}

// WithBaseURL overrides the API root, mainly for tests.
func (c *NagerClient) WithBaseURL(baseURL string) *NagerClient {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// nagerHoliday mirrors the wire format of one PublicHolidays entry.
type nagerHoliday struct {
	Date        string `json:"date"`
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// Fetch retrieves the public holidays of countryCode for year. The response
// is normalized: malformed entries are dropped, a missing local name falls
// back to the English name, and a missing country code falls back to the
// requested one.
func (c *NagerClient) Fetch(ctx context.Context, year int, countryCode string) ([]Record, error) {
	if year < minYear || year > maxYear {
		return nil, &FetchError{CountryCode: countryCode, Year: year,
			Err: fmt.Errorf("year must be between %d and %d", minYear, maxYear)}
	}

	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if !IsSupported(code) {
		return nil, &FetchError{CountryCode: countryCode, Year: year,
			Err: fmt.Errorf("country %q is not supported", countryCode)}
	}

	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{CountryCode: code, Year: year, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching public holidays", "country", code, "year", year)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{CountryCode: code, Year: year, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{CountryCode: code, Year: year,
			Err: fmt.Errorf("no holiday data for %s in %d", code, year)}
	case resp.StatusCode >= 500:
		return nil, &FetchError{CountryCode: code, Year: year,
			Err: fmt.Errorf("holiday service unavailable (HTTP %d)", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, &FetchError{CountryCode: code, Year: year,
			Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var payload []nagerHoliday
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{CountryCode: code, Year: year,
			Err: fmt.Errorf("decoding response: %w", err)}
	}

	records := make([]Record, 0, len(payload))
	for _, h := range payload {
		if _, err := time.ParseInLocation(DateLayout, h.Date, time.UTC); err != nil {
			c.logger.Warn("dropping malformed holiday entry", "country", code, "year", year, "date", h.Date)
			continue
		}
		if h.Name == "" {
			c.logger.Warn("dropping unnamed holiday entry", "country", code, "year", year, "date", h.Date)
			continue
		}
		r := Record{
			Date:        h.Date,
			LocalName:   h.LocalName,
			Name:        h.Name,
			CountryCode: h.CountryCode,
		}
		if r.LocalName == "" {
			r.LocalName = r.Name
		}
		if r.CountryCode == "" {
			r.CountryCode = code
		}
		records = append(records, r)
	}

	c.logger.Debug("fetched public holidays", "country", code, "year", year, "count", len(records))
	return records, nil
}
