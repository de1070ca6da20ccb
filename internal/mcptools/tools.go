// Package mcptools exposes the stargazing tools over the Model Context
// Protocol so the conversational-AI platform can call them as JSON-RPC tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jcb03/StargazingMCP/internal/astro"
	astroproviders "github.com/jcb03/StargazingMCP/internal/astro/providers"
	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/narrative"
	"github.com/jcb03/StargazingMCP/internal/report"
	"github.com/jcb03/StargazingMCP/internal/weather"
)

const (
	serverName    = "Astro-Weather Stargazing Guide"
	serverVersion = "1.0.0"
	serverAbout   = "AI-powered stargazing assistant for India. Combines real-time weather data " +
		"with astronomical events to provide optimal stargazing recommendations for Indian locations."
)

// Handlers bundles the collaborators the tools call into.
type Handlers struct {
	resolver   *locations.Resolver
	weatherSvc *weather.Service
	astroSvc   *astro.Service
	nasa       *astroproviders.NASAClient
	composer   *narrative.Composer
	ownerPhone string
}

// NewHandlers creates the tool handler set.
func NewHandlers(
	resolver *locations.Resolver,
	weatherSvc *weather.Service,
	astroSvc *astro.Service,
	nasa *astroproviders.NASAClient,
	composer *narrative.Composer,
	ownerPhone string,
) *Handlers {
	return &Handlers{
		resolver:   resolver,
		weatherSvc: weatherSvc,
		astroSvc:   astroSvc,
		nasa:       nasa,
		composer:   composer,
		ownerPhone: ownerPhone,
	}
}

// NewServer builds the MCP server with every tool registered.
func NewServer(h *Handlers) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_stargazing_forecast",
		Description: "Get comprehensive stargazing forecast for Indian cities combining weather and astronomy data",
	}, h.getStargazingForecast)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "find_celestial_object",
		Description: "Find when and where to observe specific celestial objects from Indian locations",
	}, h.findCelestialObject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_celestial_events",
		Description: "List upcoming celestial events visible from an Indian city",
	}, h.getCelestialEvents)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "find_best_location",
		Description: "Find supported observation locations near a coordinate, ranked by distance",
	}, h.findBestLocation)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_astronomy_picture",
		Description: "Fetch NASA's Astronomy Picture of the Day",
	}, h.getAstronomyPicture)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "help",
		Description: "Get help and see all available Astro-Weather tools",
	}, h.help)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "about",
		Description: "Server metadata",
	}, h.about)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "validate",
		Description: "Validation tool required by the chat platform",
	}, h.validate)

	return srv
}

// NewHTTPHandler wraps the server in a stateless streamable-HTTP transport.
func NewHTTPHandler(srv *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return srv
	}, &mcp.StreamableHTTPOptions{Stateless: true})
}

// ForecastInput identifies a city and event horizon for a forecast.
type ForecastInput struct {
	City      string `json:"city" jsonschema:"name of the Indian city"`
	State     string `json:"state,omitempty" jsonschema:"optional state name"`
	DaysAhead int    `json:"days_ahead,omitempty" jsonschema:"days of upcoming celestial events to include (default 3)"`
}

func (h *Handlers) getStargazingForecast(ctx context.Context, _ *mcp.CallToolRequest, in ForecastInput) (*mcp.CallToolResult, any, error) {
	reqID := uuid.NewString()
	log.Printf("INFO: tool=get_stargazing_forecast request=%s city=%s", reqID, in.City)

	city, err := h.resolver.Lookup(in.City)
	if err != nil {
		return textResult(unknownCityMessage(in.City)), nil, nil
	}

	daysAhead := in.DaysAhead
	if daysAhead <= 0 {
		daysAhead = 3
	}

	reading, err := h.weatherSvc.Refresh(ctx, city)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving weather for %s: %w", city.Name, err)
	}
	assessment := weather.Assess(reading)

	sunMoon, err := h.astroSvc.SunMoon(ctx, city.Lat, city.Lon, "")
	if err != nil {
		return nil, nil, fmt.Errorf("resolving astronomy for %s: %w", city.Name, err)
	}

	cloudCover := assessmentCloudCover(reading)
	windows := astro.SelectWindows(sunMoon.Sunset, sunMoon.Moonset, cloudCover, assessment.Rating)
	tips := astro.ViewingTips(assessment.Rating, sunMoon.MoonIlluminationPct)
	events := astro.UpcomingEvents(time.Now(), daysAhead)

	analysis := h.composer.ForecastNarrative(ctx, narrative.ForecastContext{
		City:       city,
		Reading:    reading,
		Assessment: assessment,
		SunMoon:    sunMoon,
		Windows:    windows,
		Events:     events,
	})

	text := report.RenderForecast(report.Forecast{
		City:       city,
		Reading:    reading,
		Assessment: assessment,
		SunMoon:    sunMoon,
		Windows:    windows,
		Tips:       tips,
		Events:     events,
		Analysis:   analysis,
		Generated:  time.Now(),
	})

	return textResult(text), nil, nil
}

// ObjectInput identifies a celestial object and observation city.
type ObjectInput struct {
	City            string `json:"city" jsonschema:"name of the Indian city to observe from"`
	CelestialObject string `json:"celestial_object" jsonschema:"object to observe, e.g. Jupiter or Andromeda"`
	State           string `json:"state,omitempty" jsonschema:"optional state name"`
}

func (h *Handlers) findCelestialObject(ctx context.Context, _ *mcp.CallToolRequest, in ObjectInput) (*mcp.CallToolResult, any, error) {
	reqID := uuid.NewString()
	log.Printf("INFO: tool=find_celestial_object request=%s city=%s object=%s", reqID, in.City, in.CelestialObject)

	if in.CelestialObject == "" {
		return textResult("❌ Please name a celestial object, e.g. Jupiter, Saturn or Andromeda."), nil, nil
	}

	city, err := h.resolver.Lookup(in.City)
	if err != nil {
		return textResult(unknownCityMessage(in.City)), nil, nil
	}

	sunMoon, err := h.astroSvc.SunMoon(ctx, city.Lat, city.Lon, "")
	if err != nil {
		return nil, nil, fmt.Errorf("resolving astronomy for %s: %w", city.Name, err)
	}

	analysis := h.composer.ObjectGuide(ctx, city, in.CelestialObject, sunMoon)
	return textResult(report.RenderObjectGuide(city, in.CelestialObject, sunMoon, analysis)), nil, nil
}

// EventsInput identifies a city and horizon for the events calendar.
type EventsInput struct {
	City      string `json:"city" jsonschema:"name of the Indian city"`
	DaysAhead int    `json:"days_ahead,omitempty" jsonschema:"days ahead to list (default 7)"`
}

func (h *Handlers) getCelestialEvents(_ context.Context, _ *mcp.CallToolRequest, in EventsInput) (*mcp.CallToolResult, any, error) {
	city, err := h.resolver.Lookup(in.City)
	if err != nil {
		return textResult(unknownCityMessage(in.City)), nil, nil
	}

	daysAhead := in.DaysAhead
	if daysAhead <= 0 {
		daysAhead = 7
	}

	events := astro.UpcomingEvents(time.Now(), daysAhead)
	text := fmt.Sprintf("✨ **Celestial events for %s (next %d days):**\n\n%s",
		city.DisplayName(), daysAhead, report.RenderEvents(events))
	return textResult(text), nil, nil
}

// LocationInput is a coordinate and search radius.
type LocationInput struct {
	Lat      float64 `json:"lat" jsonschema:"latitude in decimal degrees"`
	Lon      float64 `json:"lon" jsonschema:"longitude in decimal degrees"`
	RadiusKm float64 `json:"radius_km,omitempty" jsonschema:"search radius in kilometers (default 100)"`
}

func (h *Handlers) findBestLocation(_ context.Context, _ *mcp.CallToolRequest, in LocationInput) (*mcp.CallToolResult, any, error) {
	radius := in.RadiusKm
	if radius <= 0 {
		radius = 100
	}

	nearby := locations.FindNearby(in.Lat, in.Lon, radius)
	return textResult(report.RenderNearby(in.Lat, in.Lon, nearby)), nil, nil
}

// PictureInput optionally pins the APOD date.
type PictureInput struct {
	Date string `json:"date,omitempty" jsonschema:"picture date as YYYY-MM-DD (default today)"`
}

func (h *Handlers) getAstronomyPicture(ctx context.Context, _ *mcp.CallToolRequest, in PictureInput) (*mcp.CallToolResult, any, error) {
	apod, err := h.nasa.PictureOfTheDay(ctx, in.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching astronomy picture: %w", err)
	}
	return textResult(report.RenderApod(apod)), nil, nil
}

// EmptyInput is for tools that take no arguments.
type EmptyInput struct{}

func (h *Handlers) help(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, any, error) {
	return textResult(report.RenderHelp()), nil, nil
}

func (h *Handlers) about(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, any, error) {
	meta := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}{
		Name:        serverName,
		Description: serverAbout,
	}

	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return textResult(string(b)), nil, nil
}

func (h *Handlers) validate(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, any, error) {
	return textResult(h.ownerPhone), nil, nil
}

func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: s}},
	}
}

func unknownCityMessage(city string) string {
	names := locations.Names()
	if len(names) > 10 {
		names = names[:10]
	}
	return fmt.Sprintf("❌ City '%s' not found. Available cities include: %s", city, strings.Join(names, ", "))
}

// assessmentCloudCover returns the cloud cover driving window quality, with
// the same default the assessor uses.
func assessmentCloudCover(r weather.Reading) float64 {
	if r.CloudCoverPct == nil {
		return 50
	}
	return *r.CloudCoverPct
}
