package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/crop-recommendation/internal/weather"
)

var (
	// ErrNotFound is returned when no readings are available for a given location.
	ErrNotFound = errors.New("no weather data for location")
)

// MemoryStore is a concurrency-safe in-memory history of weather readings.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: readings ordered by timestamp
	data map[string][]weather.Reading

	maxHistory int           // max number of readings per location
	maxAge     time.Duration // max age of readings

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory or maxAge is <= 0, that limit is not applied.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]weather.Reading),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save appends a reading for its location and enforces retention.
func (s *MemoryStore) Save(r weather.Reading) {
	key := r.Location.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[key], r)
	// Keep the slice ordered by timestamp.
	if n := len(history); n > 1 && history[n-1].Timestamp.Before(history[n-2].Timestamp) {
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].Timestamp.Before(history[j].Timestamp)
		})
	}

	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := sort.Search(len(history), func(i int) bool {
			return !history[i].Timestamp.Before(cutoff)
		})
		history = history[i:]
	}

	if len(history) == 0 {
		delete(s.data, key)
		return
	}
	s.data[key] = history
}

// Latest returns the most recent reading for a location.
func (s *MemoryStore) Latest(loc weather.Location) (weather.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[loc.Key()]
	if len(history) == 0 {
		return weather.Reading{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// Range returns all readings for a location between from and to (inclusive).
func (s *MemoryStore) Range(loc weather.Location, from, to time.Time) ([]weather.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []weather.Reading
	for _, r := range s.data[loc.Key()] {
		if !r.Timestamp.Before(from) && !r.Timestamp.After(to) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
