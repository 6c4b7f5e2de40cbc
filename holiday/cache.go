package holiday

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/mo"
)

// cacheKey identifies one cached holiday list. Country codes are stored
// upper-cased so lookups are case-insensitive.
type cacheKey struct {
	country string
	year    int
}

// cacheEntry holds one cached holiday list. Owned exclusively by the cache;
// record slices are copied on the way in and out.
type cacheEntry struct {
	records    []Record
	expiresAt  time.Time
	accessedAt time.Time
}

// Cache is a TTL-keyed store mapping (countryCode, year) to holiday records.
// It serves hits without network access and never performs I/O inside Get;
// misses are filled explicitly through FetchAndCache.
type Cache struct {
	entries         map[cacheKey]*cacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// CacheConfig holds configuration for the holiday cache.
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before cleanup
	CleanupInterval time.Duration // How often to run cleanup
}

// DefaultCacheConfig provides the reference cache behavior: holiday lists
// stay valid for a day.
var DefaultCacheConfig = CacheConfig{
	TTL:             24 * time.Hour,
	MaxEntries:      50,
	CleanupInterval: time.Hour,
}

// NewCache creates a holiday cache with the given configuration and starts
// its cleanup goroutine. Call Close when done.
func NewCache(config CacheConfig) *Cache {
	if config.TTL <= 0 {
		config.TTL = DefaultCacheConfig.TTL
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultCacheConfig.MaxEntries
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultCacheConfig.CleanupInterval
	}

	cache := &Cache{
		entries:         make(map[cacheKey]*cacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	go cache.cleanupLoop()

	return cache
}

func makeKey(countryCode string, year int) cacheKey {
	return cacheKey{country: strings.ToUpper(strings.TrimSpace(countryCode)), year: year}
}

// Get returns the cached holiday list for (countryCode, year), or None on a
// miss or an expired entry. The returned slice is a copy.
func (c *Cache) Get(countryCode string, year int) mo.Option[[]Record] {
	key := makeKey(countryCode, year)

	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return mo.None[[]Record]()
	}

	now := time.Now()
	if now.After(entry.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return mo.None[[]Record]()
	}

	c.mutex.Lock()
	entry.accessedAt = now
	records := copyRecords(entry.records)
	c.mutex.Unlock()

	return mo.Some(records)
}

// Set stores a holiday list for (countryCode, year) with the given TTL. A
// non-positive ttl uses the cache default. The stored slice is a copy.
func (c *Cache) Set(countryCode string, year int, records []Record, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := time.Now()

	entry := &cacheEntry{
		records:    copyRecords(records),
		expiresAt:  now.Add(ttl),
		accessedAt: now,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[makeKey(countryCode, year)] = entry

	if len(c.entries) > c.maxEntries {
		c.cleanup()
	}
}

// FetchAndCache returns the cached holidays for (countryCode, year),
// fetching and storing them through source on a miss. On source failure
// nothing is written and the error propagates; a failed fetch is never
// cached as an empty list.
func (c *Cache) FetchAndCache(ctx context.Context, countryCode string, year int, source Source) ([]Record, error) {
	if cached, ok := c.Get(countryCode, year).Get(); ok {
		return cached, nil
	}

	records, err := source.Fetch(ctx, year, countryCode)
	if err != nil {
		return nil, err
	}

	c.Set(countryCode, year, records, 0)
	return copyRecords(records), nil
}

// Invalidate removes every cached year for a country.
func (c *Cache) Invalidate(countryCode string) {
	country := strings.ToUpper(strings.TrimSpace(countryCode))

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key := range c.entries {
		if key.country == country {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll clears the whole cache.
func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	c.entries = make(map[cacheKey]*cacheEntry)
	c.mutex.Unlock()
}

// cleanup removes expired entries and, if still over the limit, the least
// recently accessed ones. Caller must hold the write lock.
func (c *Cache) cleanup() {
	now := time.Now()

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) > c.maxEntries {
		type keyAccess struct {
			key        cacheKey
			accessedAt time.Time
		}

		keyAccessList := make([]keyAccess, 0, len(c.entries))
		for key, entry := range c.entries {
			keyAccessList = append(keyAccessList, keyAccess{key: key, accessedAt: entry.accessedAt})
		}

		sort.Slice(keyAccessList, func(i, j int) bool {
			return keyAccessList[i].accessedAt.Before(keyAccessList[j].accessedAt)
		})

		entriesToRemove := len(c.entries) - c.maxEntries
		for i := 0; i < entriesToRemove && i < len(keyAccessList); i++ {
			delete(c.entries, keyAccessList[i].key)
		}
	}
}

// cleanupLoop runs periodic cleanup until Close.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.cleanup()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and clears the cache.
func (c *Cache) Close() {
	close(c.stopCleanup)
	c.mutex.Lock()
	c.entries = make(map[cacheKey]*cacheEntry)
	c.mutex.Unlock()
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entryCount := len(c.entries)
	expiredCount := 0
	now := time.Now()

	countries := make(map[string]struct{})
	for key, entry := range c.entries {
		countries[key.country] = struct{}{}
		if now.After(entry.expiresAt) {
			expiredCount++
		}
	}

	return CacheStats{
		TotalEntries:   entryCount,
		ExpiredEntries: expiredCount,
		ActiveEntries:  entryCount - expiredCount,
		Countries:      len(countries),
	}
}

// CacheStats provides information about cache contents.
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
	Countries      int
}

func copyRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
