package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/coverbot/coverbot-backend/internal/agent"
	"github.com/coverbot/coverbot-backend/internal/api"
	"github.com/coverbot/coverbot-backend/internal/config"
	"github.com/coverbot/coverbot-backend/internal/providers/factory"
	"github.com/coverbot/coverbot-backend/internal/services"
	"github.com/coverbot/coverbot-backend/internal/store"
	"github.com/coverbot/coverbot-backend/internal/tools"
	"github.com/coverbot/coverbot-backend/internal/vinapi"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	conversations, err := store.NewRedisStore(cfg.Redis.URL, time.Duration(cfg.Redis.TTL)*time.Second, log)
	if err != nil {
		log.WithError(err).Fatal("failed to configure conversation store")
	}
	defer conversations.Close()

	// a store outage is recoverable per request; startup only warns
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := conversations.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("conversation store unreachable at startup")
	}
	cancel()

	providerCfg := cfg.ActiveProvider()
	provider, err := factory.CreateProvider(providerCfg)
	if err != nil {
		log.WithError(err).Fatal("failed to create completion provider")
	}
	log.WithFields(logrus.Fields{
		"provider": providerCfg.Name,
		"model":    providerCfg.Model,
	}).Info("completion provider initialized")

	var vinClient *vinapi.Client
	if cfg.VehicleAPI.BaseURL != "" {
		vinClient = vinapi.New(cfg.VehicleAPI.BaseURL, cfg.VehicleAPI.Token)
		log.WithField("base_url", cfg.VehicleAPI.BaseURL).Info("external vin decode enabled")
	}

	registry, err := tools.NewDefaultRegistry(vinClient, log)
	if err != nil {
		log.WithError(err).Fatal("failed to register capability tools")
	}

	orchestrator := agent.New(provider, registry, providerCfg.Model, log)
	chatService := services.NewChatService(conversations, orchestrator, log)

	app := fiber.New(fiber.Config{
		AppName:      "Coverbot Backend",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	api.SetupRoutes(app, chatService, string(cfg.Provider))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.WithField("addr", addr).Info("coverbot backend starting")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
