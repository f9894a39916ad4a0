package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tabibito/portfolio-api/internal/service"
)

// HealthResponse represents the payload returned by the health endpoint. The
// emailConfigured flag is how the operator observes that the notification
// relay degraded to log-only mode.
type HealthResponse struct {
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
	EmailConfigured bool      `json:"emailConfigured"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(notifier service.Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(HealthResponse{
			Status:          "ok",
			Timestamp:       time.Now().UTC(),
			EmailConfigured: notifier.Configured(),
		})
	}
}
