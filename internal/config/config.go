package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultJWTSecret = "change-me-in-production"

// Backend names
const (
	AuthLocal    = "local"
	AuthAccounts = "accounts"

	GeneratorSample = "sample"
	GeneratorHTTP   = "http"
	GeneratorLLM    = "llm"
)

type Config struct {
	// Server
	APIPort          string
	AppEnv           string
	CORSAllowOrigins string

	// Logging
	LogLevel string
	LogFile  string

	// Storage. Both are optional; empty disables the feature that needs them.
	PostgresDSN   string
	MigrationsDir string
	RedisURL      string

	// Auth
	AuthBackend string
	JWTSecret   string
	SessionTTL  time.Duration

	// Generation
	GeneratorBackend  string
	GeneratorURL      string
	LLMBaseURL        string
	LLMAPIKey         string
	LLMModel          string
	SampleLatency     time.Duration
	GenerationTimeout time.Duration

	// Workspace
	NotificationDuration time.Duration
	WorkspaceIdleTTL     time.Duration

	GenerateRateLimitPerMinute int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIPort:          getEnv("API_PORT", "3000"),
		AppEnv:           getEnv("APP_ENV", "development"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		RedisURL:      getEnv("REDIS_URL", ""),

		AuthBackend: strings.ToLower(getEnv("AUTH_BACKEND", AuthLocal)),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		SessionTTL:  time.Duration(getEnvInt("SESSION_TOKEN_TTL_HOURS", 24)) * time.Hour,

		GeneratorBackend:  strings.ToLower(getEnv("GENERATOR_BACKEND", GeneratorSample)),
		GeneratorURL:      getEnv("GENERATOR_URL", "http://localhost:8081"),
		LLMBaseURL:        getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:         getEnv("LLM_API_KEY", ""),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		SampleLatency:     time.Duration(getEnvInt("SAMPLE_LATENCY_MS", 1500)) * time.Millisecond,
		GenerationTimeout: time.Duration(getEnvInt("GENERATION_TIMEOUT_MS", 60000)) * time.Millisecond,

		NotificationDuration: time.Duration(getEnvInt("NOTIFICATION_DURATION_MS", 2000)) * time.Millisecond,
		WorkspaceIdleTTL:     time.Duration(getEnvInt("WORKSPACE_IDLE_MINUTES", 30)) * time.Minute,

		GenerateRateLimitPerMinute: getEnvInt("GENERATE_RATE_LIMIT_PER_MINUTE", 10),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate warns about insecure or inconsistent settings. Unknown backends
// fall back to their defaults.
func (c *Config) Validate(log *zap.Logger) {
	if c.JWTSecret == defaultJWTSecret {
		log.Warn("JWT_SECRET is default, change in production")
	}

	switch c.AuthBackend {
	case AuthLocal:
	case AuthAccounts:
		if c.PostgresDSN == "" {
			log.Warn("AUTH_BACKEND=accounts needs POSTGRES_DSN, falling back to local")
			c.AuthBackend = AuthLocal
		}
	default:
		log.Warn("unknown AUTH_BACKEND, using local", zap.String("value", c.AuthBackend))
		c.AuthBackend = AuthLocal
	}

	switch c.GeneratorBackend {
	case GeneratorSample:
	case GeneratorHTTP:
		if c.GeneratorURL == "" {
			log.Warn("GENERATOR_BACKEND=http needs GENERATOR_URL, falling back to sample")
			c.GeneratorBackend = GeneratorSample
		}
	case GeneratorLLM:
		if c.LLMBaseURL == "" {
			log.Warn("GENERATOR_BACKEND=llm needs LLM_BASE_URL, falling back to sample")
			c.GeneratorBackend = GeneratorSample
		} else if c.LLMAPIKey == "" {
			log.Warn("LLM_API_KEY is not set")
		}
	default:
		log.Warn("unknown GENERATOR_BACKEND, using sample", zap.String("value", c.GeneratorBackend))
		c.GeneratorBackend = GeneratorSample
	}

	if c.RedisURL == "" {
		log.Info("REDIS_URL is not set, using in-process event bus and no rate limiting")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
