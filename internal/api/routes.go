package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coverbot/coverbot-backend/internal/api/handlers"
	"github.com/coverbot/coverbot-backend/internal/services"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, svc *services.ChatService, providerName string) {
	app.Post("/chat", handlers.Chat(svc))
	app.Get("/health", handlers.Health(providerName))
}
