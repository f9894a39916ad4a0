package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tabibito/portfolio-api/internal/config"
	"github.com/tabibito/portfolio-api/internal/handler"
	"github.com/tabibito/portfolio-api/internal/middleware"
	"github.com/tabibito/portfolio-api/internal/observability"
	"github.com/tabibito/portfolio-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ContactHandler      *handler.ContactHandler
	AdminMessageHandler *handler.AdminMessageHandler
	AuthHandler         *handler.AuthHandler
	Notifier            service.Notifier
	SessionMiddleware   fiber.Handler
	UserMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	api.Get("/health", handler.HealthCheck(deps.Notifier))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.ContactHandler != nil {
		contact := api.Group("/contact", middleware.RateLimit("contact", cfg.ContactRateLimit, time.Minute))
		deps.ContactHandler.Register(contact)
	}

	session := deps.SessionMiddleware
	if session == nil {
		session = func(c *fiber.Ctx) error { return c.Next() }
	}
	user := deps.UserMiddleware
	if user == nil {
		user = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", session)
		deps.AuthHandler.RegisterSync(auth)
		deps.AuthHandler.RegisterMe(auth)
	}

	if deps.AdminMessageHandler != nil {
		admin := api.Group("/admin/messages", session, user)
		deps.AdminMessageHandler.Register(admin)
	}
}
