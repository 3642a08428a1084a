package http

import (
	"time"

	"github.com/adverve/backend/internal/config"
	"github.com/adverve/backend/internal/http/handlers"
	"github.com/adverve/backend/internal/middleware"
	"github.com/adverve/backend/internal/workspace"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrorHandler renders errors that escape handlers as {"error": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	registry *workspace.Registry,
	workspaceHandler *handlers.WorkspaceHandler,
	authHandler *handlers.AuthHandler,
	formHandler *handlers.FormHandler,
	generationHandler *handlers.GenerationHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "workspaces": registry.Len()})
	})

	api := app.Group("/api/v1")

	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/tones", metaHandler.GetTones)
	api.Get("/meta/platforms", metaHandler.GetPlatforms)

	api.Post("/workspaces", workspaceHandler.Create)

	ws := api.Group("/workspaces/:id", middleware.WorkspaceMiddleware(registry, log))
	ws.Get("", workspaceHandler.Get)
	ws.Delete("", workspaceHandler.Delete)
	ws.Get("/activity", workspaceHandler.Activity)

	// Auth prompt and session
	ws.Post("/auth/prompt", authHandler.OpenPrompt)
	ws.Delete("/auth/prompt", authHandler.ClosePrompt)
	ws.Post("/auth/prompt/switch", authHandler.SwitchMode)
	ws.Post("/auth/login", authHandler.Login)
	ws.Post("/auth/register", authHandler.Register)
	ws.Post("/auth/logout", authHandler.Logout)

	// Campaign form
	ws.Put("/form/fields/:name", formHandler.SetField)
	ws.Post("/form/features", formHandler.AddFeature)
	ws.Put("/form/features/:index", formHandler.UpdateFeature)
	ws.Delete("/form/features/:index", formHandler.RemoveFeature)
	ws.Post("/form/platforms/:platform/toggle", formHandler.TogglePlatform)

	// Generation and results
	limit := middleware.RateLimitMiddleware(rdb, "generate", cfg.GenerateRateLimitPerMinute, time.Minute)
	ws.Post("/generate", limit, generationHandler.Generate)
	ws.Post("/variants/:variantId/regenerate", limit, generationHandler.Regenerate)
	ws.Post("/variants/:variantId/copy", generationHandler.Copy)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
