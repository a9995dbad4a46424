package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/storage"
)

const keyPrefix = "flights_"

// SearchCache stores search results in the key-value store with the time
// they were computed. Entries are never evicted; Get simply ignores those
// older than ttl.
type SearchCache struct {
	store storage.Store
	ttl   time.Duration
	now   func() time.Time
}

func NewSearchCache(store storage.Store, ttl time.Duration) *SearchCache {
	return &SearchCache{store: store, ttl: ttl, now: time.Now}
}

// WithClock swaps the wall clock, for tests.
func (c *SearchCache) WithClock(now func() time.Time) *SearchCache {
	c.now = now
	return c
}

func (c *SearchCache) Get(ctx context.Context, key string) ([][]domain.SegmentFlight, bool, error) {
	var entry domain.SearchCacheEntry
	ok, err := c.store.Get(ctx, key, &entry)
	if err != nil || !ok {
		return nil, false, err
	}
	if entry.Timestamp.IsZero() || c.now().Sub(entry.Timestamp) >= c.ttl {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

func (c *SearchCache) Set(ctx context.Context, key string, data [][]domain.SegmentFlight) error {
	return c.store.Set(ctx, key, domain.SearchCacheEntry{Data: data, Timestamp: c.now().UTC()})
}

// Key derives the cache key from routes, trip type and the duration and
// aircraft filters. FlexibleDates is not part of the key, so two requests
// that differ only by it share an entry.
func Key(req domain.SearchRequest) string {
	aircraft := req.AircraftTypes
	if aircraft == nil {
		aircraft = []string{}
	}
	payload, _ := json.Marshal(struct {
		Routes        []domain.Route  `json:"routes"`
		TripType      domain.TripType `json:"tripType"`
		MaxDuration   float64         `json:"maxDuration"`
		AircraftTypes []string        `json:"aircraftTypes"`
	}{req.Routes, req.TripType, req.MaxDuration, aircraft})
	sum := sha256.Sum256(payload)
	return keyPrefix + hex.EncodeToString(sum[:16])
}
