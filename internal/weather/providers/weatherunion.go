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

// WeatherUnionProvider fetches hyperlocal readings from Weather Union's
// station network. Coverage is limited to the metros that have a locality ID
// in the city table, so it sits first in the chain but frequently passes.
type WeatherUnionProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherUnionProvider(client *http.Client, apiKey string) *WeatherUnionProvider {
	return &WeatherUnionProvider{
		name:    "weather_union",
		apiKey:  apiKey,
		baseURL: "https://www.weatherunion.com/gw/weather/external/v0/get_weather_data",
		httpCfg: httpx.DefaultConfig(client),
		circuit: httpx.NewBreaker("weather_union"),
	}
}

func (p *WeatherUnionProvider) Name() string {
	return p.name
}

func (p *WeatherUnionProvider) Fetch(ctx context.Context, city locations.City) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("weather union api key is not configured")
	}
	if city.LocalityID == "" {
		return weather.Reading{}, fmt.Errorf("no weather union locality for %s", city.Name)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("device_type", "1")
		values.Set("locality_id", city.LocalityID)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Zomato-API-Key", p.apiKey)
		return req, nil
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		LocalityWeather struct {
			Temperature   *float64 `json:"temperature"`
			Humidity      *float64 `json:"humidity"`
			WindSpeed     *float64 `json:"wind_speed"`
			RainIntensity *float64 `json:"rain_intensity"`
			RainAccum     *float64 `json:"rain_accumulation"`
		} `json:"locality_weather_data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, err
	}

	lw := payload.LocalityWeather
	if lw.Temperature == nil && lw.Humidity == nil {
		return weather.Reading{}, fmt.Errorf("weather union returned no data for %s", city.Name)
	}

	r := weather.Reading{
		Source:       p.name,
		City:         city.Name,
		Timestamp:    time.Now().UTC(),
		TemperatureC: lw.Temperature,
		HumidityPct:  lw.Humidity,
		PrecipMm:     lw.RainIntensity,
	}
	if r.PrecipMm == nil {
		r.PrecipMm = lw.RainAccum
	}
	// Stations report wind in m/s.
	if lw.WindSpeed != nil {
		r.WindSpeedKmh = weather.Float(*lw.WindSpeed * 3.6)
	}

	return r, nil
}
