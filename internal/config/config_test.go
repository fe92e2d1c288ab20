package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/graphql-secrets/internal/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 4000, cfg.ServerPort)
				assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.True(t, cfg.GraphiQLEnabled)
				assert.Equal(t, 10, cfg.GraphQLMaxDepth)
				assert.Equal(t, 10, cfg.GraphQLMaxParallelism)
				assert.Empty(t, cfg.FixturesFile)
				assert.True(t, cfg.RateLimitEnabled)
				assert.Equal(t, 10.0, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 20, cfg.RateLimitBurst)
				assert.False(t, cfg.CORSEnabled)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "graphql_secrets", cfg.MetricsNamespace)
				assert.Equal(t, 4001, cfg.MetricsPort)
				assert.NoError(t, cfg.Validate())
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST":              "localhost",
				"SERVER_PORT":              "9090",
				"SHUTDOWN_TIMEOUT_SECONDS": "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
				assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
			},
		},
		{
			name: "load custom graphql configuration",
			envVars: map[string]string{
				"GRAPHIQL_ENABLED":        "false",
				"GRAPHQL_MAX_DEPTH":       "4",
				"GRAPHQL_MAX_PARALLELISM": "2",
				"FIXTURES_FILE":           "/etc/directory.yaml",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.GraphiQLEnabled)
				assert.Equal(t, 4, cfg.GraphQLMaxDepth)
				assert.Equal(t, 2, cfg.GraphQLMaxParallelism)
				assert.Equal(t, "/etc/directory.yaml", cfg.FixturesFile)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.GetGinMode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			// Load configuration
			cfg := Load()

			// Validate
			tt.validate(t, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:              4000,
			ShutdownTimeout:         time.Second,
			LogLevel:                "info",
			GraphQLMaxDepth:         10,
			GraphQLMaxParallelism:   10,
			RateLimitEnabled:        true,
			RateLimitRequestsPerSec: 5,
			RateLimitBurst:          10,
			MetricsEnabled:          true,
			MetricsNamespace:        "graphql_secrets",
			MetricsPort:             4001,
		}
	}

	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		shouldErr bool
	}{
		{"valid", func(cfg *Config) {}, false},
		{"port out of range", func(cfg *Config) { cfg.ServerPort = 70000 }, true},
		{"unknown log level", func(cfg *Config) { cfg.LogLevel = "verbose" }, true},
		{"zero depth", func(cfg *Config) { cfg.GraphQLMaxDepth = 0 }, true},
		{"zero burst with rate limit", func(cfg *Config) { cfg.RateLimitBurst = 0 }, true},
		{"zero burst without rate limit", func(cfg *Config) {
			cfg.RateLimitEnabled = false
			cfg.RateLimitBurst = 0
			cfg.RateLimitRequestsPerSec = 0
		}, false},
		{"empty namespace with metrics", func(cfg *Config) { cfg.MetricsNamespace = "" }, true},
		{"empty namespace without metrics", func(cfg *Config) {
			cfg.MetricsEnabled = false
			cfg.MetricsNamespace = ""
		}, false},
		{"missing shutdown timeout", func(cfg *Config) { cfg.ShutdownTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.shouldErr {
				assert.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_GetGinMode(t *testing.T) {
	for level, mode := range map[string]string{
		"debug": "debug",
		"info":  "release",
		"warn":  "release",
		"error": "release",
		"":      "release",
	} {
		cfg := &Config{LogLevel: level}
		assert.Equal(t, mode, cfg.GetGinMode(), level)
	}
}
