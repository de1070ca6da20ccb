package providers

import (
	"context"
	"time"

	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/weather"
)

// MockProvider terminates the fallback chain with a fixed benign reading so
// the service degrades to a labeled mock result instead of a hard failure
// when every real provider is down or unconfigured.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) Fetch(_ context.Context, city locations.City) (weather.Reading, error) {
	return weather.Reading{
		Source:        "mock",
		City:          city.Name,
		Timestamp:     time.Now().UTC(),
		TemperatureC:  weather.Float(25),
		HumidityPct:   weather.Float(65),
		PressureHpa:   weather.Float(1013),
		CloudCoverPct: weather.Float(20),
		VisibilityKm:  weather.Float(10),
		WindSpeedKmh:  weather.Float(5),
		PrecipMm:      weather.Float(0),
		Summary:       "Clear sky",
	}, nil
}
