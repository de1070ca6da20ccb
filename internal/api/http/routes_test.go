package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcb03/StargazingMCP/internal/astro"
	astroproviders "github.com/jcb03/StargazingMCP/internal/astro/providers"
	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/store"
	"github.com/jcb03/StargazingMCP/internal/weather"
	weatherproviders "github.com/jcb03/StargazingMCP/internal/weather/providers"
)

func newTestApp(authToken string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	memStore := store.NewMemoryStore(10, 0)
	weatherSvc := weather.NewService(memStore, []weather.Provider{
		weatherproviders.NewMockProvider(),
	})
	astroSvc := astro.NewService([]astro.Provider{
		astroproviders.NewMockAstroProvider(),
	})

	RegisterRoutes(app, Deps{
		Resolver:   locations.NewResolver(""),
		WeatherSvc: weatherSvc,
		AstroSvc:   astroSvc,
		MCPHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		AuthToken: authToken,
	})
	return app
}

func TestForecastEndpoint(t *testing.T) {
	app := newTestApp("")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stargazing/forecast?city=delhi", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Assessment weather.Assessment `json:"assessment"`
		Windows    []astro.Window     `json:"windows"`
		Tips       []string           `json:"tips"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Assessment.Rating == "" {
		t.Error("expected an assessment rating")
	}
	if len(body.Windows) == 0 {
		t.Error("expected at least the evening viewing window")
	}
	if len(body.Tips) == 0 {
		t.Error("expected viewing tips")
	}
}

func TestForecastMissingCity(t *testing.T) {
	app := newTestApp("")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stargazing/forecast", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Error || body.Message == "" {
		t.Errorf("unexpected error body: %+v", body)
	}
}

func TestForecastUnknownCity(t *testing.T) {
	app := newTestApp("")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stargazing/forecast?city=atlantis", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestWeatherCurrentCachesSnapshot(t *testing.T) {
	app := newTestApp("")

	// First call misses the store and fetches from the mock provider.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?city=mumbai", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var first weather.Reading
	if err := json.NewDecoder(resp.Body).Decode(&first); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Second call must serve the cached snapshot with the same timestamp.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?city=mumbai", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var second weather.Reading
	if err := json.NewDecoder(resp.Body).Decode(&second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !first.Timestamp.Equal(second.Timestamp) {
		t.Error("expected the second call to serve the cached reading")
	}
}

func TestWeatherHistoryValidation(t *testing.T) {
	app := newTestApp("")
	now := time.Now().UTC().Format(time.RFC3339)
	earlier := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing range", "/api/v1/weather/history?city=delhi", http.StatusBadRequest},
		{"bad time format", "/api/v1/weather/history?city=delhi&from=yesterday&to=" + now, http.StatusBadRequest},
		{"to before from", "/api/v1/weather/history?city=delhi&from=" + now + "&to=" + earlier, http.StatusBadRequest},
		{"empty history", "/api/v1/weather/history?city=delhi&from=" + earlier + "&to=" + now, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestNearbyEndpoint(t *testing.T) {
	app := newTestApp("")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/locations/nearby?lat=28.61&lon=77.21&radius=100", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Cities []locations.Nearby `json:"cities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Cities) == 0 || body.Cities[0].City.Name != "delhi" {
		t.Errorf("expected delhi first, got %+v", body.Cities)
	}
}

func TestNearbyValidation(t *testing.T) {
	app := newTestApp("")

	tests := []struct {
		name   string
		target string
	}{
		{"missing coordinates", "/api/v1/locations/nearby"},
		{"lat out of range", "/api/v1/locations/nearby?lat=120&lon=77"},
		{"bad lon", "/api/v1/locations/nearby?lat=28.61&lon=east"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil), -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestEventsDaysValidation(t *testing.T) {
	app := newTestApp("")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/events?days=45", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/events?days=7", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMCPBearerAuth(t *testing.T) {
	app := newTestApp("secret-token")

	// No token.
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/mcp", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", resp.StatusCode)
	}

	// Wrong token.
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer wrong")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status with wrong token = %d, want 401", resp.StatusCode)
	}

	// Correct token reaches the mounted handler.
	req = httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer secret-token")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status with valid token = %d, want 200", resp.StatusCode)
	}
	io.Copy(io.Discard, resp.Body)
}

func TestMCPAuthDisabledWhenTokenEmpty(t *testing.T) {
	app := newTestApp("")

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/mcp", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
