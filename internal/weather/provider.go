package weather

import (
	"context"
	"time"

	"github.com/jcb03/StargazingMCP/internal/locations"
)

// Provider abstracts a weather data source. Providers are tried in chain
// order; a provider that cannot serve a city (missing credential, no station
// coverage) returns an error and the chain moves on.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city locations.City) (Reading, error)
}

// Store is the contract the in-memory snapshot store must satisfy.
type Store interface {
	SaveSnapshot(city string, r Reading)
	GetLatest(city string) (Reading, error)
	GetRange(city string, from, to time.Time) ([]Reading, error)
}
