package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/jcb03/StargazingMCP/internal/api/http"
	"github.com/jcb03/StargazingMCP/internal/astro"
	astroproviders "github.com/jcb03/StargazingMCP/internal/astro/providers"
	"github.com/jcb03/StargazingMCP/internal/config"
	"github.com/jcb03/StargazingMCP/internal/locations"
	"github.com/jcb03/StargazingMCP/internal/mcptools"
	"github.com/jcb03/StargazingMCP/internal/narrative"
	"github.com/jcb03/StargazingMCP/internal/scheduler"
	"github.com/jcb03/StargazingMCP/internal/store"
	"github.com/jcb03/StargazingMCP/internal/weather"
	weatherproviders "github.com/jcb03/StargazingMCP/internal/weather/providers"
)

func main() {
	// Load configuration (godotenv is handled inside Load).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Weather fallback chain: Weather Union first, OpenWeather second, the
	// static mock last so the chain always resolves.
	weatherSvc := weather.NewService(memStore, []weather.Provider{
		weatherproviders.NewWeatherUnionProvider(httpClient, cfg.WeatherUnionAPIKey),
		weatherproviders.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey),
		weatherproviders.NewMockProvider(),
	})

	// Astronomy chain, same shape.
	astroSvc := astro.NewService([]astro.Provider{
		astroproviders.NewIPGeolocationProvider(httpClient, cfg.AstronomyAPIKey),
		astroproviders.NewMockAstroProvider(),
	})

	nasa := astroproviders.NewNASAClient(httpClient, cfg.NASAAPIKey)
	composer := narrative.NewComposer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	resolver := locations.NewResolver(cfg.GeocoderAPIKey)

	// Scheduler that keeps tracked cities' weather warm.
	sched := scheduler.New(cfg.TrackedCities, cfg.FetchInterval, weatherSvc)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// MCP tool server.
	handlers := mcptools.NewHandlers(resolver, weatherSvc, astroSvc, nasa, composer, cfg.OwnerPhone)
	mcpServer := mcptools.NewServer(handlers)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "astroweather",
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
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

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "astroweather",
		})
	})

	// REST + MCP routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Resolver:   resolver,
		WeatherSvc: weatherSvc,
		AstroSvc:   astroSvc,
		MCPHandler: mcptools.NewHTTPHandler(mcpServer),
		AuthToken:  cfg.AuthToken,
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
