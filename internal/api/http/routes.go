package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jcb03/StargazingMCP/internal/astro"
	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/store"
	"github.com/jcb03/StargazingMCP/internal/weather"
)

var validate = validator.New()

// Deps carries the collaborators the REST handlers use.
type Deps struct {
	Resolver   *locations.Resolver
	WeatherSvc *weather.Service
	AstroSvc   *astro.Service

	// MCPHandler is the streamable-HTTP MCP endpoint, mounted at /mcp.
	MCPHandler http.Handler

	// AuthToken guards /mcp. Empty disables the check (local development).
	AuthToken string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	mcpHandler := adaptor.HTTPHandler(d.MCPHandler)
	app.All("/mcp", bearerAuth(d.AuthToken), mcpHandler)
	app.All("/mcp/*", bearerAuth(d.AuthToken), mcpHandler)

	v1 := app.Group("/api/v1")

	v1.Get("/stargazing/forecast", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c, d.Resolver)
		if err != nil {
			return err
		}

		reading, err := d.WeatherSvc.Refresh(c.Context(), city)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to resolve weather data")
		}
		assessment := weather.Assess(reading)

		sunMoon, err := d.AstroSvc.SunMoon(c.Context(), city.Lat, city.Lon, c.Query("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to resolve astronomy data")
		}

		cloudCover := 50.0
		if reading.CloudCoverPct != nil {
			cloudCover = *reading.CloudCoverPct
		}
		windows := astro.SelectWindows(sunMoon.Sunset, sunMoon.Moonset, cloudCover, assessment.Rating)

		return c.JSON(fiber.Map{
			"city":       city,
			"reading":    reading,
			"assessment": assessment,
			"sunMoon":    sunMoon,
			"windows":    windows,
			"tips":       astro.ViewingTips(assessment.Rating, sunMoon.MoonIlluminationPct),
		})
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c, d.Resolver)
		if err != nil {
			return err
		}

		// Serve the cached snapshot when present, fetching only on miss.
		reading, err := d.WeatherSvc.Latest(city.Name)
		if errors.Is(err, store.ErrNotFound) {
			reading, err = d.WeatherSvc.Refresh(c.Context(), city)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to resolve weather data")
		}

		return c.JSON(reading)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		readings, err := d.WeatherSvc.History(locations.Key(req.City), req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"city":     req.City,
			"from":     req.From,
			"to":       req.To,
			"readings": readings,
		})
	})

	v1.Get("/locations/nearby", func(c *fiber.Ctx) error {
		var req nearbyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		radius := req.RadiusKm
		if radius == 0 {
			radius = 100
		}

		return c.JSON(fiber.Map{
			"lat":    req.Lat,
			"lon":    req.Lon,
			"radius": radius,
			"cities": locations.FindNearby(req.Lat, req.Lon, radius),
		})
	})

	v1.Get("/events", func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 7)
		if days < 1 || days > 30 {
			return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 30")
		}
		return c.JSON(fiber.Map{
			"events": astro.UpcomingEvents(time.Now(), days),
		})
	})
}

// bearerAuth enforces the static token on the MCP endpoint.
func bearerAuth(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}
		if c.Get(fiber.HeaderAuthorization) != "Bearer "+token {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or missing bearer token")
		}
		return c.Next()
	}
}

// cityQuery holds the query parameter identifying a city.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx, resolver *locations.Resolver) (locations.City, error) {
	q := cityQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return locations.City{}, fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
	}

	city, err := resolver.Lookup(q.City)
	if err != nil {
		return locations.City{}, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return city, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	City string    `validate:"required"`
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.City = c.Query("city")

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// nearbyQuery holds query parameters for the nearby-locations endpoint.
type nearbyQuery struct {
	Lat      float64 `validate:"required,gte=-90,lte=90"`
	Lon      float64 `validate:"required,gte=-180,lte=180"`
	RadiusKm float64 `validate:"gte=0,lte=2000"`
}

func (n *nearbyQuery) bind(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return errors.New("invalid lon")
	}

	n.Lat = lat
	n.Lon = lon

	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			return errors.New("invalid radius")
		}
		n.RadiusKm = radius
	}
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
