// Package report renders forecast data into the markdown-ish text the chat
// platform displays verbatim.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jcb03/StargazingMCP/internal/astro"
	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/weather"
)

// Forecast bundles everything a full stargazing forecast report needs.
type Forecast struct {
	City       locations.City
	Reading    weather.Reading
	Assessment weather.Assessment
	SunMoon    astro.SunMoonTimes
	Windows    []astro.Window
	Tips       []string
	Events     []astro.Event
	Analysis   string
	Generated  time.Time
}

// RenderForecast produces the full stargazing forecast report.
func RenderForecast(f Forecast) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🌟 **Stargazing Forecast for %s**\n\n", f.City.DisplayName())

	b.WriteString("**📍 Location Details:**\n")
	fmt.Fprintf(&b, "• Coordinates: %.4f°N, %.4f°E\n", f.City.Lat, f.City.Lon)
	fmt.Fprintf(&b, "• Timezone: %s\n", f.City.Timezone)
	fmt.Fprintf(&b, "• Date: %s\n\n", f.SunMoon.Date)

	b.WriteString("**🌤️ Current Weather Conditions:**\n")
	fmt.Fprintf(&b, "• Temperature: %s°C\n", floatOrNA(f.Reading.TemperatureC))
	fmt.Fprintf(&b, "• Humidity: %s%%\n", floatOrNA(f.Reading.HumidityPct))
	fmt.Fprintf(&b, "• Cloud Cover: %s%%\n", floatOrNA(f.Reading.CloudCoverPct))
	fmt.Fprintf(&b, "• Visibility: %skm\n", floatOrNA(f.Reading.VisibilityKm))
	fmt.Fprintf(&b, "• Weather: %s\n", stringOrNA(f.Reading.Summary))
	fmt.Fprintf(&b, "• Source: %s\n\n", f.Reading.Source)

	b.WriteString("**⭐ Stargazing Assessment:**\n")
	fmt.Fprintf(&b, "%s **%s**\nScore: %d/100\n\n%s\n\n",
		f.Assessment.Icon, f.Assessment.Rating, f.Assessment.Score, f.Assessment.Recommendation)

	b.WriteString("**🌅 Sun & Moon Times:**\n")
	fmt.Fprintf(&b, "• Sunrise: %s IST\n", f.SunMoon.Sunrise)
	fmt.Fprintf(&b, "• Sunset: %s IST\n", f.SunMoon.Sunset)
	fmt.Fprintf(&b, "• Moonrise: %s IST\n", clockOrNA(f.SunMoon.Moonrise))
	fmt.Fprintf(&b, "• Moonset: %s IST\n", clockOrNA(f.SunMoon.Moonset))
	fmt.Fprintf(&b, "• Moon Phase: %s\n", stringOrNA(f.SunMoon.MoonPhase))
	fmt.Fprintf(&b, "• Moon Illumination: %.0f%%\n\n", f.SunMoon.MoonIlluminationPct)

	if f.Analysis != "" {
		fmt.Fprintf(&b, "**🔭 AI Stargazing Analysis:**\n%s\n\n", f.Analysis)
	}

	fmt.Fprintf(&b, "**📅 Best Viewing Times:**\n%s\n", RenderWindows(f.Windows))
	fmt.Fprintf(&b, "**🎯 Viewing Tips:**\n%s\n\n", renderTips(f.Tips))

	if len(f.Events) > 0 {
		fmt.Fprintf(&b, "**✨ Upcoming Celestial Events:**\n%s\n", RenderEvents(f.Events))
	}

	fmt.Fprintf(&b, "⏰ **Updated:** %s IST\n", f.Generated.Format("2006-01-02 15:04"))
	b.WriteString("🇮🇳 **Built for Indian stargazers**\n")

	return b.String()
}

// RenderWindows formats viewing windows as a bulleted list.
func RenderWindows(windows []astro.Window) string {
	if len(windows) == 0 {
		return "• No specific viewing times available\n"
	}

	var b strings.Builder
	for _, w := range windows {
		fmt.Fprintf(&b, "• **%s**: %s - %s\n", w.Period, w.Start, w.End)
		fmt.Fprintf(&b, "  Quality: %s - %s\n", w.Quality, w.Description)
	}
	return b.String()
}

// RenderEvents formats up to five celestial events.
func RenderEvents(events []astro.Event) string {
	if len(events) == 0 {
		return "• No specific events in database for this period\n"
	}

	var b strings.Builder
	for i, e := range events {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "• **%s** at %s: %s\n", e.Date, e.Time, e.Name)
		fmt.Fprintf(&b, "  %s\n", e.Description)
	}
	return b.String()
}

// RenderObjectGuide produces the per-object observation report.
func RenderObjectGuide(city locations.City, object string, sm astro.SunMoonTimes, analysis string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔭 **Celestial Object Guide: %s**\n\n", titleCase(object))
	fmt.Fprintf(&b, "📍 **Observing from:** %s\n", city.DisplayName())
	fmt.Fprintf(&b, "🗓️ **Date:** %s\n\n", sm.Date)

	b.WriteString(analysis)
	b.WriteString("\n\n**🌙 Current Moon Conditions:**\n")
	fmt.Fprintf(&b, "• Phase: %s\n", stringOrNA(sm.MoonPhase))
	fmt.Fprintf(&b, "• Illumination: %.0f%%\n", sm.MoonIlluminationPct)
	fmt.Fprintf(&b, "• Impact on viewing: %s\n", moonImpact(sm.MoonIlluminationPct))

	b.WriteString("\nBuilt with ❤️ for Indian stargazers 🇮🇳\n")
	return b.String()
}

// RenderApod formats a NASA picture-of-the-day entry.
func RenderApod(apod astro.Apod) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛰️ **NASA Astronomy Picture of the Day — %s**\n\n", apod.Date)
	fmt.Fprintf(&b, "**%s**\n\n%s\n\n", apod.Title, apod.Explanation)
	fmt.Fprintf(&b, "🔗 %s\n", apod.URL)
	if apod.HDURL != "" {
		fmt.Fprintf(&b, "🖼️ HD: %s\n", apod.HDURL)
	}
	if apod.Copyright != "" {
		fmt.Fprintf(&b, "© %s\n", apod.Copyright)
	}
	return b.String()
}

// RenderNearby formats a ranked nearby-cities list.
func RenderNearby(lat, lon float64, nearby []locations.Nearby) string {
	if len(nearby) == 0 {
		return fmt.Sprintf("No supported cities found near %.4f, %.4f. Try a larger radius.", lat, lon)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📍 **Observation locations near %.4f, %.4f:**\n\n", lat, lon)
	for _, n := range nearby {
		fmt.Fprintf(&b, "• **%s** — %.0f km away (%.4f°N, %.4f°E)\n",
			n.City.DisplayName(), n.DistanceKm, n.City.Lat, n.City.Lon)
	}
	return b.String()
}

// RenderHelp is the static help text listing all tools and cities.
func RenderHelp() string {
	return fmt.Sprintf(`🌟 **Astro-Weather Stargazing Guide - India**

**Available Tools:**
🔭 get_stargazing_forecast - Complete stargazing forecast with weather + astronomy
🌟 find_celestial_object - Find when/where to observe planets, constellations, etc.
✨ get_celestial_events - Upcoming celestial events for a city
📍 find_best_location - Supported observation spots near a coordinate
🛰️ get_astronomy_picture - NASA Astronomy Picture of the Day
✅ validate - Validate server connection
ℹ️ about - About this server
❓ help - Show this help message

**भारतीय शहर (Supported Indian Cities):**
%s

**Example Commands:**
- "Stargazing forecast for Delhi tonight"
- "When can I see Saturn from Bangalore?"
- "Find Jupiter from Chennai"

🚀 Built for Indian stargazers with ❤️
`, strings.Join(locations.Names(), ", "))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func moonImpact(illuminationPct float64) string {
	if illuminationPct < 30 {
		return "🌚 Dark sky - excellent for faint objects"
	}
	return "🌕 Bright moon - focus on planets and bright objects"
}

func renderTips(tips []string) string {
	if len(tips) == 0 {
		return "• Check weather conditions before heading out\n"
	}

	var b strings.Builder
	for i, tip := range tips {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "• %s\n", tip)
	}
	return b.String()
}

func floatOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *v)
}

func stringOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func clockOrNA(c *astro.Clock) string {
	if c == nil {
		return "N/A"
	}
	return c.String()
}
