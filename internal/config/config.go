// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	customValidation "github.com/allisson/graphql-secrets/internal/validation"
)

// Config holds all application configuration. The encryption key is not part
// of it: a new key is generated every time the process starts.
type Config struct {
	// ServerHost is the host address the GraphQL server will bind to.
	ServerHost string
	// ServerPort is the port number the GraphQL server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// GraphiQLEnabled serves the GraphiQL IDE on GET /query without a query parameter.
	GraphiQLEnabled bool
	// GraphQLMaxDepth limits the nesting depth of incoming queries.
	GraphQLMaxDepth int
	// GraphQLMaxParallelism limits how many resolvers run concurrently per request.
	GraphQLMaxParallelism int

	// FixturesFile is a YAML dataset to serve instead of the embedded one.
	FixturesFile string

	// RateLimitEnabled indicates whether per-IP rate limiting of /query is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size per IP.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 4000),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// GraphQL
		GraphiQLEnabled:       env.GetBool("GRAPHIQL_ENABLED", true),
		GraphQLMaxDepth:       env.GetInt("GRAPHQL_MAX_DEPTH", 10),
		GraphQLMaxParallelism: env.GetInt("GRAPHQL_MAX_PARALLELISM", 10),

		// Dataset
		FixturesFile: env.GetString("FIXTURES_FILE", ""),

		// Rate Limiting (per IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "graphql_secrets"),
		MetricsPort:      env.GetInt("METRICS_PORT", 4001),
	}
}

// Validate checks value ranges. It is called once at startup so that a bad
// environment fails fast instead of surfacing at the first request.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Min(0), validation.Max(65535)),
		validation.Field(&c.ShutdownTimeout, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.GraphQLMaxDepth, validation.Required, validation.Min(1)),
		validation.Field(&c.GraphQLMaxParallelism, validation.Required, validation.Min(1)),
		validation.Field(&c.RateLimitRequestsPerSec,
			validation.When(c.RateLimitEnabled, validation.Required, validation.Min(0.0)),
		),
		validation.Field(&c.RateLimitBurst,
			validation.When(c.RateLimitEnabled, validation.Required, validation.Min(1)),
		),
		validation.Field(&c.MetricsNamespace,
			validation.When(c.MetricsEnabled, validation.Required, customValidation.NoWhitespace),
		),
		validation.Field(&c.MetricsPort,
			validation.When(c.MetricsEnabled, validation.Min(0), validation.Max(65535)),
		),
	)
	return customValidation.WrapValidationError(err)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// loadDotEnv searches for a .env file from the current directory up to the
// filesystem root and loads the first one found.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
