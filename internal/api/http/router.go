package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-service/internal/api/http/handlers"
	"github.com/spec-kit/contact-service/internal/auth"
	"github.com/spec-kit/contact-service/internal/config"
	"github.com/spec-kit/contact-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Contacts *handlers.ContactsHandler
	Metrics  *handlers.MetricsHandler
	Gate     *auth.Gate
}

// NewApp creates the fiber application with global middleware installed.
func NewApp(cfg config.AppConfig, logger *zap.Logger, metrics *observability.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger),
	})
	RegisterMiddlewares(app, logger, metrics, cfg.CORSAllowOrigins, cfg.RequestTimeout())
	return app
}

// RegisterRoutes wires HTTP routes. Anything unmatched answers 404.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	api := app.Group("/api")
	api.Get("/health", cfg.Health.API)
	api.Post("/login", cfg.Auth.Login)
	api.Post("/register", cfg.Auth.Register)

	api.Post("/contacts", cfg.Gate.Protect(cfg.Contacts.Create))
	api.Get("/contacts", cfg.Gate.Protect(cfg.Contacts.List))
	api.Get("/contacts/:id", cfg.Gate.Protect(cfg.Contacts.Get))
	api.Put("/contacts/:id", cfg.Gate.Protect(cfg.Contacts.Update))
	api.Delete("/contacts/:id", cfg.Gate.Protect(cfg.Contacts.Delete))

	app.Use(routeNotFound)
}
