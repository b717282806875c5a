package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, IdentityProviderMicrosoft, cfg.Identity.Provider)
		assert.Equal(t, "https://graph.microsoft.com/v1.0/me", cfg.Identity.GraphMeURL)
		assert.Equal(t, CacheBackendMemory, cfg.AuthCache.Backend)
		assert.Equal(t, 5*time.Minute, cfg.AuthCache.TTL)
		assert.Equal(t, 10000, cfg.AuthCache.Capacity)
		assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("IDENTITY_PROVIDER", "google")
		t.Setenv("AUTH_CACHE_BACKEND", "redis")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("AUTH_CACHE_TTL", "90s")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, IdentityProviderGoogle, cfg.Identity.Provider)
		assert.Equal(t, CacheBackendRedis, cfg.AuthCache.Backend)
		assert.Equal(t, 90*time.Second, cfg.AuthCache.TTL)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	})

	t.Run("MissingMongoURI", func(t *testing.T) {
		t.Setenv("MONGO_URI", "")

		_, err := Load()

		require.ErrorContains(t, err, "MONGO_URI")
	})

	t.Run("RedisWithoutURL", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("AUTH_CACHE_BACKEND", "redis")
		t.Setenv("REDIS_URL", "")

		_, err := Load()

		require.ErrorContains(t, err, "REDIS_URL")
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("IDENTITY_PROVIDER", "okta")

		_, err := Load()

		require.ErrorContains(t, err, "IDENTITY_PROVIDER")
	})
}
