package astro

import (
	"github.com/jcb03/StargazingMCP/internal/weather"
)

// Window is a labeled time interval considered favorable for observation.
type Window struct {
	Period      string         `json:"period"`
	Start       Clock          `json:"startTime"`
	End         Clock          `json:"endTime"`
	Quality     weather.Rating `json:"quality"`
	Description string         `json:"description"`
}

var (
	eveningEnd      = MustClock("23:00")
	lateNightCutoff = MustClock("02:00")
	lateNightEnd    = MustClock("04:00")
)

// SelectWindows derives the ordered list of observation windows for a night.
//
// The Evening window (sunset to 23:00) is always present and carries the
// overall rating. A Late Night window (moonset to 04:00) is appended only
// when the moon sets before 02:00, leaving dark skies for faint objects; its
// quality is upgraded to Excellent under less than 30% cloud cover.
func SelectWindows(sunset Clock, moonset *Clock, cloudCoverPct float64, overall weather.Rating) []Window {
	windows := []Window{
		{
			Period:      "Evening",
			Start:       sunset,
			End:         eveningEnd,
			Quality:     overall,
			Description: "Best for planetary observation and bright deep-sky objects",
		},
	}

	if moonset != nil && moonset.Before(lateNightCutoff) {
		quality := overall
		if cloudCoverPct < 30 {
			quality = weather.RatingExcellent
		}
		windows = append(windows, Window{
			Period:      "Late Night",
			Start:       *moonset,
			End:         lateNightEnd,
			Quality:     quality,
			Description: "Dark skies perfect for faint galaxies and nebulae",
		})
	}

	return windows
}

// ViewingQuality maps cloud cover alone to an overall viewing rating, used
// when no full assessment is available.
func ViewingQuality(cloudCoverPct float64) weather.Rating {
	switch {
	case cloudCoverPct > 70:
		return weather.RatingPoor
	case cloudCoverPct > 40:
		return weather.RatingFair
	case cloudCoverPct > 20:
		return weather.RatingGood
	default:
		return weather.RatingExcellent
	}
}
