package store

import (
	"errors"
	"sync"
	"time"

	"github.com/jcb03/StargazingMCP/internal/weather"
)

// ErrNotFound is returned when no data is available for a given city.
var ErrNotFound = errors.New("no weather data for city")

// readingHistory holds a time-ordered list of readings for a city.
type readingHistory struct {
	readings []weather.Reading
}

// MemoryStore is a concurrency-safe in-memory history of resolved weather
// readings, keyed by city name.
type MemoryStore struct {
	mu sync.RWMutex

	data map[string]*readingHistory

	// retention configuration
	maxHistory int           // max number of readings per city
	maxAge     time.Duration // optional max age of readings
}

// NewMemoryStore creates a MemoryStore with optional limits.
// Values <= 0 are treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*readingHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveSnapshot appends a reading for a city and enforces retention.
func (s *MemoryStore) SaveSnapshot(city string, r weather.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[city]
	if !ok {
		history = &readingHistory{}
		s.data[city] = history
	}

	history.readings = append(history.readings, r)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.readings) > s.maxHistory {
		over := len(history.readings) - s.maxHistory
		history.readings = history.readings[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.readings); i++ {
			if !history.readings[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.readings) {
			history.readings = history.readings[i:]
		}
	}
}

// GetLatest returns the most recent reading for a city.
func (s *MemoryStore) GetLatest(city string) (weather.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[city]
	if !ok || len(history.readings) == 0 {
		return weather.Reading{}, ErrNotFound
	}
	return history.readings[len(history.readings)-1], nil
}

// GetRange returns all readings for a city between from and to (inclusive).
func (s *MemoryStore) GetRange(city string, from, to time.Time) ([]weather.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[city]
	if !ok || len(history.readings) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Reading
	for _, r := range history.readings {
		if !r.Timestamp.Before(from) && !r.Timestamp.After(to) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
