package holiday

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func testRecords(year int) []Record {
	return []Record{
		{Date: fmt.Sprintf("%d-01-01", year), LocalName: "Año Nuevo", Name: "New Year's Day", CountryCode: "CR"},
		{Date: fmt.Sprintf("%d-12-25", year), LocalName: "Navidad", Name: "Christmas Day", CountryCode: "CR"},
	}
}

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache(CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: time.Minute,
	})
	defer cache.Close()

	// Miss first
	if cache.Get("CR", 2025).IsPresent() {
		t.Error("Expected cache miss, got hit")
	}

	cache.Set("CR", 2025, testRecords(2025), 0)

	got, ok := cache.Get("CR", 2025).Get()
	if !ok {
		t.Fatal("Expected cache hit, got miss")
	}
	if len(got) != 2 || got[0].Name != "New Year's Day" {
		t.Errorf("Unexpected cached records: %+v", got)
	}
}

func TestCache_KeyIsCaseInsensitive(t *testing.T) {
	cache := NewCache(DefaultCacheConfig)
	defer cache.Close()

	cache.Set("cr", 2025, testRecords(2025), 0)

	if !cache.Get("CR", 2025).IsPresent() {
		t.Error("Expected hit for upper-cased country code")
	}
	if !cache.Get(" Cr ", 2025).IsPresent() {
		t.Error("Expected hit for padded mixed-case country code")
	}
	if cache.Get("CR", 2026).IsPresent() {
		t.Error("Expected miss for a different year")
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	cache := NewCache(CacheConfig{
		TTL:             50 * time.Millisecond,
		MaxEntries:      100,
		CleanupInterval: time.Minute,
	})
	defer cache.Close()

	cache.Set("CR", 2025, testRecords(2025), 0)

	if !cache.Get("CR", 2025).IsPresent() {
		t.Fatal("Expected hit before expiry")
	}

	time.Sleep(80 * time.Millisecond)

	if cache.Get("CR", 2025).IsPresent() {
		t.Error("Expected miss after TTL expiry")
	}
}

func TestCache_PerEntryTTL(t *testing.T) {
	cache := NewCache(CacheConfig{
		TTL:             time.Hour,
		MaxEntries:      100,
		CleanupInterval: time.Minute,
	})
	defer cache.Close()

	cache.Set("CR", 2025, testRecords(2025), 50*time.Millisecond)
	cache.Set("US", 2025, testRecords(2025), 0) // cache default

	time.Sleep(80 * time.Millisecond)

	if cache.Get("CR", 2025).IsPresent() {
		t.Error("Expected short-TTL entry to expire")
	}
	if !cache.Get("US", 2025).IsPresent() {
		t.Error("Expected default-TTL entry to survive")
	}
}

func TestCache_InvalidateCountry(t *testing.T) {
	cache := NewCache(DefaultCacheConfig)
	defer cache.Close()

	cache.Set("CR", 2024, testRecords(2024), 0)
	cache.Set("CR", 2025, testRecords(2025), 0)
	cache.Set("US", 2025, testRecords(2025), 0)

	cache.Invalidate("cr")

	if cache.Get("CR", 2024).IsPresent() || cache.Get("CR", 2025).IsPresent() {
		t.Error("Expected every CR year to be invalidated")
	}
	if !cache.Get("US", 2025).IsPresent() {
		t.Error("Expected US entry to survive country invalidation")
	}

	cache.InvalidateAll()
	if cache.Get("US", 2025).IsPresent() {
		t.Error("Expected empty cache after InvalidateAll")
	}
}

func TestCache_ReturnsCopies(t *testing.T) {
	cache := NewCache(DefaultCacheConfig)
	defer cache.Close()

	original := testRecords(2025)
	cache.Set("CR", 2025, original, 0)

	// Mutating the caller's slice must not reach the cache.
	original[0].Name = "mutated"
	got, _ := cache.Get("CR", 2025).Get()
	if got[0].Name != "New Year's Day" {
		t.Error("Cache stored a shared reference instead of a copy")
	}

	// Mutating a returned slice must not reach the cache either.
	got[1].Name = "also mutated"
	again, _ := cache.Get("CR", 2025).Get()
	if again[1].Name != "Christmas Day" {
		t.Error("Cache returned a shared reference instead of a copy")
	}
}

type countingSource struct {
	mu      sync.Mutex
	calls   int
	records []Record
	err     error
}

func (s *countingSource) Fetch(_ context.Context, year int, countryCode string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, &FetchError{CountryCode: countryCode, Year: year, Err: s.err}
	}
	return s.records, nil
}

func TestCache_FetchAndCache(t *testing.T) {
	cache := NewCache(DefaultCacheConfig)
	defer cache.Close()

	source := &countingSource{records: testRecords(2025)}

	got, err := cache.FetchAndCache(context.Background(), "CR", 2025, source)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 records, got %d", len(got))
	}

	// Second call is served from the cache.
	if _, err := cache.FetchAndCache(context.Background(), "CR", 2025, source); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if source.calls != 1 {
		t.Errorf("Expected exactly one source fetch, got %d", source.calls)
	}
}

func TestCache_FetchFailureIsNotCached(t *testing.T) {
	cache := NewCache(DefaultCacheConfig)
	defer cache.Close()

	source := &countingSource{err: fmt.Errorf("boom")}

	if _, err := cache.FetchAndCache(context.Background(), "CR", 2025, source); err == nil {
		t.Fatal("Expected fetch error to propagate")
	}
	if cache.Get("CR", 2025).IsPresent() {
		t.Error("A failed fetch must not be cached as an empty list")
	}

	// Recovery: the next attempt hits the source again.
	source.err = nil
	source.records = testRecords(2025)
	if _, err := cache.FetchAndCache(context.Background(), "CR", 2025, source); err != nil {
		t.Fatalf("Unexpected error after recovery: %v", err)
	}
	if source.calls != 2 {
		t.Errorf("Expected 2 source fetches, got %d", source.calls)
	}
}

func TestCache_EvictsOldestWhenOverLimit(t *testing.T) {
	cache := NewCache(CacheConfig{
		TTL:             time.Hour,
		MaxEntries:      3,
		CleanupInterval: time.Hour,
	})
	defer cache.Close()

	cache.Set("CR", 2020, testRecords(2020), 0)
	time.Sleep(5 * time.Millisecond)
	cache.Set("CR", 2021, testRecords(2021), 0)
	time.Sleep(5 * time.Millisecond)
	cache.Set("CR", 2022, testRecords(2022), 0)
	time.Sleep(5 * time.Millisecond)
	cache.Set("CR", 2023, testRecords(2023), 0)

	stats := cache.Stats()
	if stats.TotalEntries > 3 {
		t.Errorf("Expected at most 3 entries after eviction, got %d", stats.TotalEntries)
	}
	if cache.Get("CR", 2020).IsPresent() {
		t.Error("Expected the least recently accessed entry to be evicted")
	}
	if !cache.Get("CR", 2023).IsPresent() {
		t.Error("Expected the newest entry to survive eviction")
	}
}

func TestCache_Stats(t *testing.T) {
	cache := NewCache(CacheConfig{
		TTL:             time.Hour,
		MaxEntries:      100,
		CleanupInterval: time.Hour,
	})
	defer cache.Close()

	cache.Set("CR", 2024, testRecords(2024), 0)
	cache.Set("CR", 2025, testRecords(2025), 0)
	cache.Set("US", 2025, testRecords(2025), 0)

	stats := cache.Stats()
	if stats.TotalEntries != 3 {
		t.Errorf("Expected 3 total entries, got %d", stats.TotalEntries)
	}
	if stats.ActiveEntries != 3 {
		t.Errorf("Expected 3 active entries, got %d", stats.ActiveEntries)
	}
	if stats.Countries != 2 {
		t.Errorf("Expected 2 countries, got %d", stats.Countries)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache(DefaultCacheConfig)
	defer cache.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for year := 2020; year < 2030; year++ {
				cache.Set("CR", year, testRecords(year), 0)
				cache.Get("CR", year)
			}
		}(i)
	}
	wg.Wait()

	if got := cache.Stats().TotalEntries; got != 10 {
		t.Errorf("Expected 10 entries after concurrent writes, got %d", got)
	}
}
