package providers

import (
	"context"
	"time"

	"github.com/jcb03/StargazingMCP/internal/astro"
)

// MockProvider terminates the astronomy chain with fixed timing so forecasts
// keep working when the real provider is unreachable.
type MockProvider struct{}

func NewMockAstroProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) SunMoon(_ context.Context, _, _ float64, date string) (astro.SunMoonTimes, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	moonrise := astro.MustClock("20:15")
	moonset := astro.MustClock("08:30")

	return astro.SunMoonTimes{
		Source:              "mock",
		Date:                date,
		Sunrise:             astro.MustClock("06:30"),
		Sunset:              astro.MustClock("18:45"),
		SolarNoon:           astro.MustClock("12:37"),
		DayLength:           "12:15",
		Moonrise:            &moonrise,
		Moonset:             &moonset,
		MoonPhase:           "WAXING_GIBBOUS",
		MoonIlluminationPct: 75,
	}, nil
}
