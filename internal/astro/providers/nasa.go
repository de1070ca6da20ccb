package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/jcb03/StargazingMCP/internal/astro"
	"github.com/jcb03/StargazingMCP/internal/httpx"
)

// NASAClient fetches the Astronomy Picture of the Day. The public DEMO_KEY
// works with a tight rate limit, so the breaker matters here.
type NASAClient struct {
	apiKey  string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNASAClient(client *http.Client, apiKey string) *NASAClient {
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}
	return &NASAClient{
		apiKey:  apiKey,
		baseURL: "https://api.nasa.gov/planetary/apod",
		httpCfg: httpx.DefaultConfig(client),
		circuit: httpx.NewBreaker("nasa_apod"),
	}
}

// PictureOfTheDay returns the APOD entry for the given date (YYYY-MM-DD), or
// today's when date is empty.
func (c *NASAClient) PictureOfTheDay(ctx context.Context, date string) (astro.Apod, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("api_key", c.apiKey)
		if date != "" {
			values.Set("date", date)
		}

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return astro.Apod{}, err
	}
	defer resp.Body.Close()

	var apod astro.Apod
	if err := json.NewDecoder(resp.Body).Decode(&apod); err != nil {
		return astro.Apod{}, err
	}

	return apod, nil
}
