package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/jcb03/StargazingMCP/internal/astro"
	"github.com/jcb03/StargazingMCP/internal/httpx"
)

// IPGeolocationProvider fetches sun/moon timing from ipgeolocation.io. The
// endpoint works without a key at a reduced quota, so the key is optional.
type IPGeolocationProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewIPGeolocationProvider(client *http.Client, apiKey string) *IPGeolocationProvider {
	return &IPGeolocationProvider{
		name:    "ipgeolocation",
		apiKey:  apiKey,
		baseURL: "https://api.ipgeolocation.io/v2/astronomy",
		httpCfg: httpx.DefaultConfig(client),
		circuit: httpx.NewBreaker("ipgeolocation"),
	}
}

func (p *IPGeolocationProvider) Name() string {
	return p.name
}

func (p *IPGeolocationProvider) SunMoon(ctx context.Context, lat, lon float64, date string) (astro.SunMoonTimes, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("long", fmt.Sprintf("%f", lon))
		if date != "" {
			values.Set("date", date)
		}
		if p.apiKey != "" {
			values.Set("apiKey", p.apiKey)
		}

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return astro.SunMoonTimes{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Astronomy struct {
			Date             string  `json:"date"`
			Sunrise          string  `json:"sunrise"`
			Sunset           string  `json:"sunset"`
			SolarNoon        string  `json:"solar_noon"`
			DayLength        string  `json:"day_length"`
			Moonrise         string  `json:"moonrise"`
			Moonset          string  `json:"moonset"`
			MoonPhase        string  `json:"moon_phase"`
			MoonIllumination percent `json:"moon_illumination_percentage"`
		} `json:"astronomy"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return astro.SunMoonTimes{}, err
	}

	a := payload.Astronomy

	sunrise, err := astro.ParseClock(a.Sunrise)
	if err != nil {
		return astro.SunMoonTimes{}, fmt.Errorf("bad sunrise from %s: %w", p.name, err)
	}
	sunset, err := astro.ParseClock(a.Sunset)
	if err != nil {
		return astro.SunMoonTimes{}, fmt.Errorf("bad sunset from %s: %w", p.name, err)
	}

	sm := astro.SunMoonTimes{
		Source:              p.name,
		Date:                a.Date,
		Sunrise:             sunrise,
		Sunset:              sunset,
		DayLength:           a.DayLength,
		MoonPhase:           a.MoonPhase,
		MoonIlluminationPct: float64(a.MoonIllumination),
	}

	if noon, err := astro.ParseClock(a.SolarNoon); err == nil {
		sm.SolarNoon = noon
	}
	// Moonrise/moonset come back as "-" on days the moon stays up or down.
	if c, err := astro.ParseClock(a.Moonrise); err == nil {
		sm.Moonrise = &c
	}
	if c, err := astro.ParseClock(a.Moonset); err == nil {
		sm.Moonset = &c
	}

	return sm, nil
}

// percent decodes a percentage that the API serves either as a bare number
// or as a quoted string like "75" or "75%".
type percent float64

func (p *percent) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	*p = percent(v)
	return nil
}
