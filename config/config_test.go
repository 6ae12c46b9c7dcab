package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 16, cfg.Cache.Shards)
		assert.False(t, cfg.Auth.Enabled)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "plan_service", cfg.Database.DatabaseName)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("CACHE_SIZE", "500")
		_ = os.Setenv("CACHE_TTL", "10m")
		_ = os.Setenv("CACHE_SHARDS", "8")
		_ = os.Setenv("AUTH_ENABLED", "true")
		_ = os.Setenv("API_KEYS", "key1,key2")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 500, cfg.Cache.Size)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 8, cfg.Cache.Shards)
		assert.True(t, cfg.Auth.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("AUTH_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	})

	t.Run("loads database configuration", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("MONGODB_ENABLED", "true")
		_ = os.Setenv("MONGODB_URI", "mongodb://db:27017")
		_ = os.Setenv("MONGODB_DATABASE", "plans_test")
		_ = os.Setenv("MONGODB_LOGS_TTL", "168h")
		_ = os.Setenv("CIRCUIT_BREAKER_FAILURE_THRESHOLD", "3")
		defer os.Clearenv()

		cfg := Load()

		assert.True(t, cfg.Database.Enabled)
		assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
		assert.Equal(t, "plans_test", cfg.Database.DatabaseName)
		assert.Equal(t, 7*24*time.Hour, cfg.Database.LogsTTL)
		assert.Equal(t, 3, cfg.Database.CircuitBreakerFailureThreshold)
	})

	t.Run("parses API keys with whitespace", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("API_KEYS", " key1 , key2 , key3 ")
		defer os.Clearenv()

		cfg := Load()

		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.True(t, cfg.Auth.APIKeys["key3"])
	})

	t.Run("parses CORS origins in addition to defaults", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")
		defer os.Clearenv()

		cfg := Load()

		assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:3000")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://app.example.com")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://staging.example.com")
	})

	t.Run("returns nil for empty API keys", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Nil(t, cfg.Auth.APIKeys)
	})
}
