package astro

import "github.com/jcb03/StargazingMCP/internal/weather"

// ViewingTips returns observation advice for the night, keyed on the overall
// quality tier plus the moon's illumination.
func ViewingTips(quality weather.Rating, moonIlluminationPct float64) []string {
	var tips []string

	switch quality {
	case weather.RatingExcellent:
		tips = append(tips,
			"Perfect conditions for deep-sky photography",
			"Try observing faint galaxies like Andromeda",
			"Great time for meteor shower observation",
		)
	case weather.RatingGood:
		tips = append(tips,
			"Focus on bright planets and star clusters",
			"Double stars will be clearly visible",
			"Good for lunar observation",
		)
	case weather.RatingFair:
		tips = append(tips,
			"Stick to bright objects like planets",
			"Moon and bright stars will be visible",
			"Wait for cloud breaks",
		)
	default:
		tips = append(tips,
			"Consider indoor astronomy activities",
			"Plan for better weather tomorrow",
			"Use astronomy apps to plan future sessions",
		)
	}

	if moonIlluminationPct > 80 {
		tips = append(tips, "Bright moon - excellent for lunar observation but challenging for deep-sky")
	} else if moonIlluminationPct < 20 {
		tips = append(tips, "New moon phase - perfect for observing faint deep-sky objects")
	}

	return tips
}
