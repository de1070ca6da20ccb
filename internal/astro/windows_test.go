package astro

import (
	"testing"

	"github.com/jcb03/StargazingMCP/internal/weather"
)

func clockPtr(s string) *Clock {
	c := MustClock(s)
	return &c
}

func TestSelectWindowsEarlyMoonset(t *testing.T) {
	windows := SelectWindows(MustClock("18:45"), clockPtr("01:30"), 50, weather.RatingGood)

	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}

	evening := windows[0]
	if evening.Period != "Evening" {
		t.Errorf("first window = %q, want Evening", evening.Period)
	}
	if evening.Start != MustClock("18:45") || evening.End != MustClock("23:00") {
		t.Errorf("evening window %s-%s, want 18:45-23:00", evening.Start, evening.End)
	}
	if evening.Quality != weather.RatingGood {
		t.Errorf("evening quality = %s, want %s", evening.Quality, weather.RatingGood)
	}

	lateNight := windows[1]
	if lateNight.Period != "Late Night" {
		t.Errorf("second window = %q, want Late Night", lateNight.Period)
	}
	if lateNight.Start != MustClock("01:30") || lateNight.End != MustClock("04:00") {
		t.Errorf("late night window %s-%s, want 01:30-04:00", lateNight.Start, lateNight.End)
	}
	// 50% cloud cover: no upgrade, falls back to the overall rating.
	if lateNight.Quality != weather.RatingGood {
		t.Errorf("late night quality = %s, want %s", lateNight.Quality, weather.RatingGood)
	}
}

func TestSelectWindowsLateMoonset(t *testing.T) {
	windows := SelectWindows(MustClock("18:45"), clockPtr("23:30"), 10, weather.RatingGood)

	if len(windows) != 1 {
		t.Fatalf("expected only the evening window, got %d windows", len(windows))
	}
	if windows[0].Period != "Evening" {
		t.Errorf("window = %q, want Evening", windows[0].Period)
	}
}

func TestSelectWindowsClearSkyUpgrade(t *testing.T) {
	windows := SelectWindows(MustClock("18:00"), clockPtr("00:45"), 20, weather.RatingFair)

	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if windows[1].Quality != weather.RatingExcellent {
		t.Errorf("late night quality = %s, want upgrade to %s", windows[1].Quality, weather.RatingExcellent)
	}
}

func TestSelectWindowsNoMoonset(t *testing.T) {
	windows := SelectWindows(MustClock("18:45"), nil, 10, weather.RatingExcellent)

	if len(windows) != 1 {
		t.Fatalf("expected only the evening window, got %d windows", len(windows))
	}
}

func TestSelectWindowsMoonsetAtCutoff(t *testing.T) {
	// The cutoff is strict: a moonset at exactly 02:00 gets no window.
	windows := SelectWindows(MustClock("18:45"), clockPtr("02:00"), 10, weather.RatingGood)

	if len(windows) != 1 {
		t.Fatalf("expected only the evening window, got %d windows", len(windows))
	}
}

func TestViewingQuality(t *testing.T) {
	tests := []struct {
		clouds float64
		want   weather.Rating
	}{
		{0, weather.RatingExcellent},
		{20, weather.RatingExcellent},
		{21, weather.RatingGood},
		{40, weather.RatingGood},
		{41, weather.RatingFair},
		{70, weather.RatingFair},
		{71, weather.RatingPoor},
		{100, weather.RatingPoor},
	}

	for _, tt := range tests {
		if got := ViewingQuality(tt.clouds); got != tt.want {
			t.Errorf("ViewingQuality(%v) = %s, want %s", tt.clouds, got, tt.want)
		}
	}
}
