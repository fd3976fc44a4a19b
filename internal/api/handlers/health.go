package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Health reports service liveness and the configured model provider.
func Health(providerName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"provider": providerName,
		})
	}
}
