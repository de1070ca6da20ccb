// Package narrative turns structured forecast data into free-text guidance
// through an OpenAI chat completion, with deterministic fallback text when no
// key is configured or the call fails. Its output is advisory prose only;
// nothing downstream parses it.
package narrative

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jcb03/StargazingMCP/internal/astro"
	"github.com/jcb03/StargazingMCP/internal/common"
	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/weather"
)

// Composer generates stargazing narratives. A nil client (no API key) makes
// every method fall back to canned text, keeping the tools fail-soft.
type Composer struct {
	client *openai.Client
	model  string
}

// NewComposer creates a Composer. apiKey may be empty.
func NewComposer(apiKey, model string) *Composer {
	c := &Composer{model: model}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

// ForecastContext is everything the forecast prompt is seeded with.
type ForecastContext struct {
	City       locations.City
	Reading    weather.Reading
	Assessment weather.Assessment
	SunMoon    astro.SunMoonTimes
	Windows    []astro.Window
	Events     []astro.Event
}

// ForecastNarrative produces the AI analysis section of a stargazing
// forecast. Never fails: on any error the deterministic fallback is returned.
func (c *Composer) ForecastNarrative(ctx context.Context, fc ForecastContext) string {
	prompt := fmt.Sprintf(`Provide a comprehensive stargazing forecast for %s, India.

Current conditions:
- Weather: %s (clouds %s, humidity %s, visibility %s, wind %s)
- Stargazing score: %d/100 (%s)
- Sunset: %s IST, Moonset: %s IST
- Moon: %s at %.0f%% illumination
- Viewing windows: %s
- Upcoming events: %s

Create a detailed stargazing guide including:
1. Tonight's viewing conditions and recommendations
2. Best viewing times with explanations
3. What celestial objects to observe
4. Weather impact analysis
5. Tips for this specific location in India
6. Upcoming celestial events to plan for

Make it engaging and educational for Indian stargazers.
Include both Hindi and English terms where appropriate.`,
		fc.City.DisplayName(),
		fc.Reading.Summary,
		fc.Assessment.Factors.CloudCover,
		fc.Assessment.Factors.Humidity,
		fc.Assessment.Factors.Visibility,
		fc.Assessment.Factors.WindSpeed,
		fc.Assessment.Score,
		fc.Assessment.Rating,
		fc.SunMoon.Sunset,
		clockOrDash(fc.SunMoon.Moonset),
		fc.SunMoon.MoonPhase,
		fc.SunMoon.MoonIlluminationPct,
		summarizeWindows(fc.Windows),
		summarizeEvents(fc.Events),
	)

	if text, err := c.complete(ctx, prompt, 1200); err == nil {
		return text
	}
	return fallbackForecast(fc)
}

// ObjectGuide produces an observation guide for a specific celestial object.
func (c *Composer) ObjectGuide(ctx context.Context, city locations.City, object string, sm astro.SunMoonTimes) string {
	planets := astro.PlanetaryPositions()
	var planetLines []string
	for _, p := range planets {
		planetLines = append(planetLines, fmt.Sprintf("%s: visible=%t, %s, mag %.1f",
			p.Name, p.Visible, p.Constellation, p.Magnitude))
	}

	prompt := fmt.Sprintf(`Provide a detailed observation guide for %s from %s, India.

Location details:
- Coordinates: %.4f°N, %.4f°E
- Sunset %s IST, moon phase %s at %.0f%% illumination
- Planetary positions: %s

For the celestial object "%s", provide:
1. Current visibility status (visible/not visible tonight)
2. Best viewing times and compass direction
3. What to look for (appearance, brightness)
4. Equipment recommendations (naked eye, binoculars, telescope)
5. Photography tips if applicable
6. Cultural significance in Indian astronomy if relevant

Make it practical for Indian observers with local references.
Include Hindi names of constellations where applicable.`,
		object, city.DisplayName(), city.Lat, city.Lon,
		sm.Sunset, sm.MoonPhase, sm.MoonIlluminationPct,
		strings.Join(planetLines, "; "), object,
	)

	if text, err := c.complete(ctx, prompt, 1000); err == nil {
		return text
	}
	return fallbackObjectGuide(object)
}

func (c *Composer) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("openai client not configured")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("ERROR: openai completion failed: %v", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func fallbackForecast(fc ForecastContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s tonight over %s.\n", fc.Assessment.Recommendation, fc.City.DisplayName())
	fmt.Fprintf(&b, "Start observing after sunset at %s IST.", fc.SunMoon.Sunset)
	if fc.SunMoon.MoonIlluminationPct < 30 {
		b.WriteString(" The dim moon leaves dark skies for faint deep-sky targets.")
	} else {
		b.WriteString(" The bright moon favors planets and lunar observation.")
	}
	for _, p := range astro.PlanetaryPositions() {
		if p.Visible && p.Magnitude < 0 {
			fmt.Fprintf(&b, " Look for %s in %s.", p.Name, p.Constellation)
		}
	}
	return b.String()
}

// fallbackObjectGuide categorizes the object by name to pick canned advice.
func fallbackObjectGuide(object string) string {
	switch {
	case common.HasAny(object, "jupiter", "saturn", "mars", "venus", "mercury"):
		return fmt.Sprintf("%s is a bright planet: look for it along the ecliptic after sunset. "+
			"Visible to the naked eye; binoculars show moons, a small telescope shows detail.", object)
	case common.HasAny(object, "moon", "chandra"):
		return "The Moon rewards any instrument. Observe along the terminator where shadows bring out crater relief."
	case common.HasAny(object, "galaxy", "nebula", "andromeda", "orion nebula"):
		return fmt.Sprintf("%s is a faint deep-sky object: wait for a moonless, cloud-free window "+
			"away from city lights, and use binoculars or a telescope with low magnification.", object)
	default:
		return fmt.Sprintf("Check a planetarium app for the current position of %s, "+
			"then observe during the darkest window after moonset.", object)
	}
}

func summarizeWindows(windows []astro.Window) string {
	var parts []string
	for _, w := range windows {
		parts = append(parts, fmt.Sprintf("%s %s-%s (%s)", w.Period, w.Start, w.End, w.Quality))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func summarizeEvents(events []astro.Event) string {
	var parts []string
	for _, e := range events {
		parts = append(parts, fmt.Sprintf("%s %s %s", e.Date, e.Time, e.Name))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}

func clockOrDash(c *astro.Clock) string {
	if c == nil {
		return "-"
	}
	return c.String()
}
