package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds every knob the service needs. It is loaded once at startup
// and passed to constructors explicitly; nothing else reads the environment.
type AppConfig struct {
	// Weather provider credentials, tried in chain order.
	WeatherUnionAPIKey string
	OpenWeatherAPIKey  string

	// Astronomy provider credentials.
	AstronomyAPIKey string // ipgeolocation.io
	NASAAPIKey      string // defaults to the public DEMO_KEY

	// Narrative generation.
	OpenAIAPIKey string
	OpenAIModel  string

	// Optional Google key for geocoding cities missing from the static table.
	GeocoderAPIKey string

	// Static bearer token protecting the MCP endpoint, and the owner phone
	// number returned by the validate tool.
	AuthToken  string
	OwnerPhone string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// FetchInterval controls how often the scheduler warms the weather store.
	FetchInterval time.Duration

	// TrackedCities are refreshed periodically by the scheduler.
	TrackedCities []string

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per city (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherUnionAPIKey = os.Getenv("WEATHER_UNION_API_KEY")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.AstronomyAPIKey = os.Getenv("ASTRONOMY_API_KEY")
	cfg.NASAAPIKey = getenvDefault("NASA_API_KEY", "DEMO_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = getenvDefault("OPENAI_MODEL", "gpt-4o")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.AuthToken = os.Getenv("AUTH_TOKEN")
	cfg.OwnerPhone = os.Getenv("MY_NUMBER")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Scheduler interval: default 30 minutes.
	intervalStr := getenvDefault("FETCH_INTERVAL", "30m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 48) // roughly 24h at 30-minute intervals

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.TrackedCities = loadTrackedCities()

	return cfg, nil
}

// loadTrackedCities parses the comma-separated TRACKED_CITIES list,
// defaulting to the major metros.
func loadTrackedCities() []string {
	raw := getenvDefault("TRACKED_CITIES", "delhi,mumbai,bangalore,chennai")

	var cities []string
	for _, c := range strings.Split(raw, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			cities = append(cities, strings.ToLower(c))
		}
	}
	return cities
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
