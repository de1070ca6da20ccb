package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jcb03/StargazingMCP/internal/httpx"
	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/weather"
)

// OpenWeatherProvider fetches current conditions from OpenWeatherMap. It is
// the nationwide fallback behind Weather Union.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweather",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: httpx.DefaultConfig(client),
		circuit: httpx.NewBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, city locations.City) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")

		q := fmt.Sprintf("%s,IN", city.Name)
		if city.State != "" {
			q = fmt.Sprintf("%s,%s,IN", city.Name, city.State)
		}
		values.Set("q", q)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     *float64 `json:"temp"`
			Humidity *float64 `json:"humidity"`
			Pressure *float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
		Clouds struct {
			All *float64 `json:"all"`
		} `json:"clouds"`
		Rain struct {
			OneH   float64 `json:"1h"`
			ThreeH float64 `json:"3h"`
		} `json:"rain"`
		Visibility *float64 `json:"visibility"` // meters
		Weather    []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, err
	}

	ts := time.Unix(payload.Dt, 0).UTC()
	if payload.Dt == 0 {
		ts = time.Now().UTC()
	}

	r := weather.Reading{
		Source:        p.name,
		City:          city.Name,
		Timestamp:     ts,
		TemperatureC:  payload.Main.Temp,
		HumidityPct:   payload.Main.Humidity,
		PressureHpa:   payload.Main.Pressure,
		CloudCoverPct: payload.Clouds.All,
	}

	if payload.Visibility != nil {
		r.VisibilityKm = weather.Float(*payload.Visibility / 1000)
	}
	// OpenWeather reports wind in m/s with metric units.
	if payload.Wind.Speed != nil {
		r.WindSpeedKmh = weather.Float(*payload.Wind.Speed * 3.6)
	}
	precip := payload.Rain.OneH
	if precip == 0 {
		precip = payload.Rain.ThreeH
	}
	if precip > 0 {
		r.PrecipMm = weather.Float(precip)
	}
	if len(payload.Weather) > 0 {
		r.Summary = payload.Weather[0].Description
	}

	return r, nil
}
