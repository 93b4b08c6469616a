package service

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"

	"github.com/odmap/backend/internal/domain"
)

// CachedSource memoises another source per day. Only successful fetches are
// stored; concurrent misses for the same day share one fetch, which runs
// detached from the cancellation of whichever caller started it.
type CachedSource struct {
	next  RecordSource
	cache gcache.Cache
	group singleflight.Group
}

// NewCachedSource wraps next with an LRU cache holding up to size days
func NewCachedSource(next RecordSource, size int) *CachedSource {
	if size < 1 {
		size = len(domain.Days)
	}
	return &CachedSource{
		next:  next,
		cache: gcache.New(size).LRU().Build(),
	}
}

// Fetch returns the cached records of day, fetching them on first use
func (s *CachedSource) Fetch(ctx context.Context, day int) ([]domain.TripRecord, error) {
	if v, err := s.cache.Get(day); err == nil {
		return v.([]domain.TripRecord), nil
	} else if !errors.Is(err, gcache.KeyNotFoundError) {
		return nil, err
	}

	v, err, _ := s.group.Do(strconv.Itoa(day), func() (interface{}, error) {
		// a flight that finished between our miss and Do already stored the day
		if v, err := s.cache.Get(day); err == nil {
			return v, nil
		}
		records, err := s.next.Fetch(context.WithoutCancel(ctx), day)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(day, records); err != nil {
			log.Printf("cache: failed to store day %d: %v", day, err)
		}
		log.Printf("cache: loaded day %d (%d records)", day, len(records))
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.TripRecord), nil
}

// Cached reports whether day is already in memory
func (s *CachedSource) Cached(day int) bool {
	return s.cache.Has(day)
}

// Purge drops every cached day
func (s *CachedSource) Purge() {
	s.cache.Purge()
}

// Health forwards to the wrapped source when it can report reachability
func (s *CachedSource) Health(ctx context.Context) error {
	if hc, ok := s.next.(interface{ Health(context.Context) error }); ok {
		return hc.Health(ctx)
	}
	return nil
}
