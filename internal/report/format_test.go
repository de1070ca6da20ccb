package report

import (
	"strings"
	"testing"
	"time"

	"github.com/jcb03/StargazingMCP/internal/astro"
	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/weather"
)

func sampleForecast() Forecast {
	city, _ := locations.Find("delhi")
	reading := weather.Reading{
		Source:        "mock",
		TemperatureC:  weather.Float(25),
		HumidityPct:   weather.Float(65),
		CloudCoverPct: weather.Float(20),
		VisibilityKm:  weather.Float(10),
		Summary:       "Clear sky",
	}
	moonset := astro.MustClock("01:30")

	return Forecast{
		City:       city,
		Reading:    reading,
		Assessment: weather.Assess(reading),
		SunMoon: astro.SunMoonTimes{
			Source:              "mock",
			Date:                "2025-06-01",
			Sunrise:             astro.MustClock("06:30"),
			Sunset:              astro.MustClock("18:45"),
			Moonset:             &moonset,
			MoonPhase:           "WAXING_CRESCENT",
			MoonIlluminationPct: 25,
		},
		Windows: []astro.Window{
			{Period: "Evening", Start: astro.MustClock("18:45"), End: astro.MustClock("23:00"), Quality: weather.RatingExcellent, Description: "After sunset"},
		},
		Tips:      []string{"Perfect conditions for deep-sky objects"},
		Generated: time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC),
	}
}

func TestRenderForecast(t *testing.T) {
	out := RenderForecast(sampleForecast())

	for _, want := range []string{
		"Stargazing Forecast for Delhi, Delhi",
		"Temperature: 25°C",
		"Cloud Cover: 20%",
		"Sunset: 18:45 IST",
		"Moonset: 01:30 IST",
		"Score: 100/100",
		"Excellent",
		"18:45 - 23:00",
		"Perfect conditions for deep-sky objects",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n---\n%s", want, out)
		}
	}
}

func TestRenderForecastMissingFields(t *testing.T) {
	f := sampleForecast()
	f.Reading = weather.Reading{Source: "mock"}
	f.SunMoon.Moonset = nil
	f.SunMoon.Moonrise = nil

	out := RenderForecast(f)
	if !strings.Contains(out, "Temperature: N/A°C") {
		t.Error("expected N/A for missing temperature")
	}
	if !strings.Contains(out, "Moonset: N/A IST") {
		t.Error("expected N/A for missing moonset")
	}
}

func TestRenderWindowsEmpty(t *testing.T) {
	out := RenderWindows(nil)
	if !strings.Contains(out, "No specific viewing times available") {
		t.Errorf("unexpected empty-windows text: %q", out)
	}
}

func TestRenderEventsCapsAtFive(t *testing.T) {
	events := make([]astro.Event, 8)
	for i := range events {
		events[i] = astro.Event{Name: "Jupiter at opposition", Date: "2025-06-01", Time: "21:30"}
	}

	out := RenderEvents(events)
	if got := strings.Count(out, "Jupiter at opposition"); got != 5 {
		t.Errorf("rendered %d events, want 5", got)
	}
}

func TestRenderHelpListsLocations(t *testing.T) {
	out := RenderHelp()
	for _, city := range []string{"delhi", "mumbai", "mount_abu"} {
		if !strings.Contains(out, city) {
			t.Errorf("help output missing city %q", city)
		}
	}
}
