package weather

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidReading is returned by Validate for numeric fields outside their
// documented ranges.
var ErrInvalidReading = errors.New("invalid weather reading")

// Reading is a normalized snapshot of atmospheric conditions relevant to sky
// visibility. Optional fields are pointers; nil means the provider did not
// report the value and the assessor substitutes its documented default.
type Reading struct {
	// Source names the provider that produced the reading ("weather_union",
	// "openweather", "mock").
	Source    string    `json:"source"`
	City      string    `json:"city"`
	Timestamp time.Time `json:"timestamp"` // always UTC

	TemperatureC  *float64 `json:"temperatureC,omitempty"`
	HumidityPct   *float64 `json:"humidityPercent,omitempty"`
	PressureHpa   *float64 `json:"pressureHpa,omitempty"`
	CloudCoverPct *float64 `json:"cloudCoverPercent,omitempty"`
	VisibilityKm  *float64 `json:"visibilityKm,omitempty"`
	WindSpeedKmh  *float64 `json:"windSpeedKmh,omitempty"`
	PrecipMm      *float64 `json:"precipMm,omitempty"`

	// Summary is the provider's free-text condition description.
	Summary string `json:"summary,omitempty"`
}

// Validate checks present fields against their documented ranges.
// Percentages must be within [0,100]; the remaining magnitudes non-negative.
func (r Reading) Validate() error {
	checks := []struct {
		name    string
		value   *float64
		min     float64
		max     float64
		bounded bool
	}{
		{"cloudCoverPercent", r.CloudCoverPct, 0, 100, true},
		{"humidityPercent", r.HumidityPct, 0, 100, true},
		{"visibilityKm", r.VisibilityKm, 0, 0, false},
		{"windSpeedKmh", r.WindSpeedKmh, 0, 0, false},
		{"precipMm", r.PrecipMm, 0, 0, false},
	}

	for _, c := range checks {
		if c.value == nil {
			continue
		}
		v := *c.value
		if v < c.min || (c.bounded && v > c.max) {
			return fmt.Errorf("%w: %s=%v out of range", ErrInvalidReading, c.name, v)
		}
	}
	return nil
}

// Float returns a pointer to v, for building readings with optional fields.
func Float(v float64) *float64 {
	return &v
}

// orDefault substitutes def when the field is absent.
func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
