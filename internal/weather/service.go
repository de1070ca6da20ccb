package weather

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jcb03/StargazingMCP/internal/locations"
)

// ErrNoProviders is returned when the fallback chain is empty or every
// provider in it failed. With the mock provider terminating the chain this
// should never surface in practice.
var ErrNoProviders = errors.New("no weather provider produced a reading")

// Service resolves weather readings through an ordered fail-soft fallback
// chain and records resolved snapshots in the store.
type Service struct {
	store     Store
	providers []Provider
}

// NewService creates a Service. Providers are tried in the given order; the
// last one is expected to be the always-succeeding mock.
func NewService(store Store, providers []Provider) *Service {
	return &Service{
		store:     store,
		providers: providers,
	}
}

// Current resolves a reading for the city by walking the provider chain.
// Individual provider failures are logged and swallowed; callers only ever
// see the final resolved reading.
func (s *Service) Current(ctx context.Context, city locations.City) (Reading, error) {
	for _, p := range s.providers {
		r, err := p.Fetch(ctx, city)
		if err != nil {
			log.Printf("ERROR: provider %s failed for %s: %v", p.Name(), city.Name, err)
			continue
		}
		if r.Timestamp.IsZero() {
			r.Timestamp = time.Now().UTC()
		}
		return r, nil
	}
	return Reading{}, ErrNoProviders
}

// Refresh fetches a fresh reading and records it in the store, returning the
// reading. The scheduler uses it to keep tracked cities warm; the forecast
// tools use it so ad-hoc queries land in history too.
func (s *Service) Refresh(ctx context.Context, city locations.City) (Reading, error) {
	r, err := s.Current(ctx, city)
	if err != nil {
		return Reading{}, err
	}
	s.store.SaveSnapshot(city.Name, r)
	return r, nil
}

// Latest delegates to the underlying store.
func (s *Service) Latest(city string) (Reading, error) {
	return s.store.GetLatest(city)
}

// History delegates to the underlying store.
func (s *Service) History(city string, from, to time.Time) ([]Reading, error) {
	return s.store.GetRange(city, from, to)
}
