package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tabibito/portfolio-api/internal/service"
)

func openIDFromContext(c *fiber.Ctx) string {
	if v, ok := c.Locals("open_id").(string); ok {
		return v
	}
	return ""
}

func roleFromContext(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_role").(string); ok {
		return v
	}
	return ""
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	return service.Actor{
		OpenID: openIDFromContext(c),
		Role:   roleFromContext(c),
	}
}
