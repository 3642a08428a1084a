package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adverve/backend/internal/config"
	"github.com/adverve/backend/internal/db"
	"github.com/adverve/backend/internal/events"
	apphttp "github.com/adverve/backend/internal/http"
	"github.com/adverve/backend/internal/http/handlers"
	"github.com/adverve/backend/internal/logger"
	"github.com/adverve/backend/internal/repositories"
	"github.com/adverve/backend/internal/services"
	"github.com/adverve/backend/internal/workspace"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{Level: cfg.LogLevel, Production: cfg.IsProduction(), File: cfg.LogFile})
	defer log.Sync()

	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database (optional): accounts and the audit trail
	var (
		accountRepo *repositories.AccountRepo
		auditRepo   *repositories.AuditRepo
	)
	if cfg.PostgresDSN != "" {
		pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
		if err != nil {
			log.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		if err := db.RunMigrations(ctx, pool, cfg.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}

		accountRepo = repositories.NewAccountRepo(pool)
		auditRepo = repositories.NewAuditRepo(pool)
	}

	// Events: Redis pub/sub when configured, otherwise in process
	var (
		rdb        *redis.Client
		publisher  events.Publisher
		subscriber events.Subscriber
	)
	if cfg.RedisURL != "" {
		client, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		rdb = client
		bus := events.NewRedisBus(rdb, log)
		publisher, subscriber = bus, bus
	} else {
		bus := events.NewMemoryBus(256, log)
		publisher, subscriber = bus, bus
	}

	// Collaborators
	issuer := services.NewSessionIssuer(cfg.JWTSecret, cfg.SessionTTL)
	var authn workspace.Authenticator = services.NewLocalAuthenticator(issuer, log)
	if cfg.AuthBackend == config.AuthAccounts {
		authn = services.NewAccountAuthenticator(accountRepo, issuer, log)
	}

	var generator workspace.Generator
	switch cfg.GeneratorBackend {
	case config.GeneratorHTTP:
		generator = services.NewGenerationClient(cfg.GeneratorURL, log)
	case config.GeneratorLLM:
		generator = services.NewLLMGenerator(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, log)
	default:
		generator = services.NewSampleGenerator(cfg.SampleLatency, log)
	}
	log.Info("backends selected",
		zap.String("auth", cfg.AuthBackend),
		zap.String("generator", cfg.GeneratorBackend),
		zap.Bool("audit", auditRepo != nil),
	)

	deps := workspace.Deps{
		Authenticator: authn,
		Generator:     generator,
		Clipboard:     services.NewEventClipboard(publisher),
		Publisher:     publisher,
		Log:           log,
		Settings: workspace.Settings{
			NotificationDuration: cfg.NotificationDuration,
			GenerationTimeout:    cfg.GenerationTimeout,
		},
	}
	var activity handlers.AuditReader
	if auditRepo != nil {
		deps.Auditor = auditRepo
		activity = auditRepo
	}
	registry := workspace.NewRegistry(ctx, deps, cfg.WorkspaceIdleTTL)
	defer registry.Close()

	// Handlers
	workspaceHandler := handlers.NewWorkspaceHandler(registry, activity, log)
	authHandler := handlers.NewAuthHandler(log)
	formHandler := handlers.NewFormHandler(log)
	generationHandler := handlers.NewGenerationHandler(log)
	wsHub := handlers.NewWSHub(registry, subscriber, log)

	// Start WS hub
	if err := wsHub.Start(ctx); err != nil {
		log.Fatal("failed to subscribe to workspace events", zap.Error(err))
	}

	// Fiber app
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})

	apphttp.SetupRouter(app, cfg, log, rdb, registry, workspaceHandler, authHandler, formHandler, generationHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
