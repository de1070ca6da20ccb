package weather

import "fmt"

// Rating is a four-way partition of the stargazing score range.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
)

// Defaults substituted by Assess when a reading field is absent.
const (
	defaultCloudCoverPct = 50
	defaultHumidityPct   = 60
	defaultWindKmh       = 5
	defaultVisibilityKm  = 10
	defaultPrecipMm      = 0
)

// Assessment is the stargazing viewing-quality verdict derived from a single
// Reading. Computed fresh every time, never persisted.
type Assessment struct {
	Score          int     `json:"score"` // clamped to [0,100]
	Rating         Rating  `json:"rating"`
	Icon           string  `json:"icon"`
	Factors        Factors `json:"factors"`
	Recommendation string  `json:"recommendation"`
}

// Factors echoes the inputs that drove the score, formatted for display.
type Factors struct {
	CloudCover    string `json:"cloudCover"`
	Humidity      string `json:"humidity"`
	Visibility    string `json:"visibility"`
	WindSpeed     string `json:"windSpeed"`
	Precipitation string `json:"precipitation"`
}

// Assess maps a weather reading to a stargazing quality score, rating and
// recommendation. It is total and deterministic: absent fields take benign
// defaults, present but out-of-range values are clamped into range before
// scoring. Callers that prefer rejection over clamping should run
// Reading.Validate first.
func Assess(r Reading) Assessment {
	clouds := clamp(orDefault(r.CloudCoverPct, defaultCloudCoverPct), 0, 100)
	humidity := clamp(orDefault(r.HumidityPct, defaultHumidityPct), 0, 100)
	wind := max(orDefault(r.WindSpeedKmh, defaultWindKmh), 0)
	visibility := max(orDefault(r.VisibilityKm, defaultVisibilityKm), 0)
	precip := max(orDefault(r.PrecipMm, defaultPrecipMm), 0)

	score := 100

	// Cloud cover dominates. First matching bracket wins.
	switch {
	case clouds > 80:
		score -= 50
	case clouds > 60:
		score -= 30
	case clouds > 40:
		score -= 20
	case clouds > 20:
		score -= 10
	}

	switch {
	case humidity > 90:
		score -= 15
	case humidity > 80:
		score -= 10
	case humidity > 70:
		score -= 5
	}

	if precip > 0 {
		score -= 40
	}

	switch {
	case visibility < 5:
		score -= 20
	case visibility < 8:
		score -= 10
	}

	// Mild wind clears haze; strong wind shakes the telescope.
	switch {
	case wind > 15:
		score -= 10
	case wind >= 5:
		score += 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	rating := RatingFor(score)

	return Assessment{
		Score:  score,
		Rating: rating,
		Icon:   ratingIcon(rating),
		Factors: Factors{
			CloudCover:    fmt.Sprintf("%g%%", clouds),
			Humidity:      fmt.Sprintf("%g%%", humidity),
			Visibility:    fmt.Sprintf("%gkm", visibility),
			WindSpeed:     fmt.Sprintf("%gkm/h", wind),
			Precipitation: yesNo(precip > 0),
		},
		Recommendation: recommendationFor(rating),
	}
}

// RatingFor partitions a clamped score into its rating band.
func RatingFor(score int) Rating {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 65:
		return RatingGood
	case score >= 45:
		return RatingFair
	default:
		return RatingPoor
	}
}

func ratingIcon(r Rating) string {
	switch r {
	case RatingExcellent:
		return "🌟"
	case RatingGood:
		return "⭐"
	case RatingFair:
		return "☁️"
	default:
		return "🌧️"
	}
}

func recommendationFor(r Rating) string {
	switch r {
	case RatingExcellent:
		return "🌟 Perfect conditions for stargazing! Clear skies and excellent visibility."
	case RatingGood:
		return "⭐ Good stargazing weather. Some clouds but should have clear patches."
	case RatingFair:
		return "☁️ Fair conditions. Wait for cloud breaks or focus on bright objects."
	default:
		return "🌧️ Poor conditions for stargazing. Plan for another night."
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
