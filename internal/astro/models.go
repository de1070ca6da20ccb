package astro

// SunMoonTimes holds sun and moon timing for one location and date. All
// clocks are local civil time (IST for every supported city). Moonrise and
// moonset are nil on days the moon does not rise or set.
type SunMoonTimes struct {
	Source string `json:"source"`
	Date   string `json:"date"` // YYYY-MM-DD

	Sunrise   Clock  `json:"sunrise"`
	Sunset    Clock  `json:"sunset"`
	SolarNoon Clock  `json:"solarNoon"`
	DayLength string `json:"dayLength"` // "HH:MM"

	Moonrise *Clock `json:"moonrise,omitempty"`
	Moonset  *Clock `json:"moonset,omitempty"`

	MoonPhase           string  `json:"moonPhase"`
	MoonIlluminationPct float64 `json:"moonIlluminationPercent"`
}

// Apod is a NASA Astronomy Picture of the Day entry.
type Apod struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl,omitempty"`
	MediaType   string `json:"media_type"`
	Copyright   string `json:"copyright,omitempty"`
}

// PlanetPosition is a static visibility entry for a bright planet. Real
// ephemeris computation is out of scope; this mirrors the fixed table the
// narrative prompt is seeded with.
type PlanetPosition struct {
	Name          string  `json:"name"`
	Visible       bool    `json:"visible"`
	Constellation string  `json:"constellation"`
	Magnitude     float64 `json:"magnitude"`
}

// PlanetaryPositions returns the static bright-planet visibility table.
func PlanetaryPositions() []PlanetPosition {
	return []PlanetPosition{
		{Name: "Jupiter", Visible: true, Constellation: "Taurus", Magnitude: -2.1},
		{Name: "Saturn", Visible: true, Constellation: "Aquarius", Magnitude: 0.8},
		{Name: "Mars", Visible: false, Constellation: "Gemini", Magnitude: 1.3},
		{Name: "Venus", Visible: true, Constellation: "Leo", Magnitude: -4.2},
	}
}
