package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	IdentityProviderMicrosoft = "microsoft"
	IdentityProviderGoogle    = "google"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// TaskServiceConfig holds the task service settings read from the environment.
type TaskServiceConfig struct {
	AppEnv         string `env:"APP_ENV"          envDefault:"development"`
	LogLevel       string `env:"LOG_LEVEL"        envDefault:"info"`
	HTTPAddr       string `env:"HTTP_ADDR"        envDefault:":8080"`
	GRPCHealthAddr string `env:"GRPC_HEALTH_ADDR" envDefault:":9090"`

	Mongo     MongoConfig
	Identity  IdentityConfig
	AuthCache AuthCacheConfig
	Discovery DiscoveryConfig

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DATABASE" envDefault:"task_management"`
}

type IdentityConfig struct {
	Provider               string `env:"IDENTITY_PROVIDER"        envDefault:"microsoft"`
	GraphMeURL             string `env:"GRAPH_ME_URL"             envDefault:"https://graph.microsoft.com/v1.0/me"`
	GoogleUserinfoEndpoint string `env:"GOOGLE_USERINFO_ENDPOINT"`
}

type AuthCacheConfig struct {
	Backend        string        `env:"AUTH_CACHE_BACKEND"  envDefault:"memory"`
	TTL            time.Duration `env:"AUTH_CACHE_TTL"      envDefault:"5m"`
	Capacity       int           `env:"AUTH_CACHE_CAPACITY" envDefault:"10000"`
	Shards         int           `env:"AUTH_CACHE_SHARDS"   envDefault:"16"`
	RedisURL       string        `env:"REDIS_URL"`
	RedisKeyPrefix string        `env:"REDIS_KEY_PREFIX"    envDefault:"identity"`
}

// DiscoveryConfig enables Consul registration when ConsulAddr is set.
type DiscoveryConfig struct {
	ConsulAddr  string `env:"CONSUL_ADDR"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"task-service"`
	ServiceHost string `env:"SERVICE_HOST" envDefault:"localhost"`
	ServicePort int    `env:"SERVICE_PORT" envDefault:"8080"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (*TaskServiceConfig, error) {
	cfg, err := env.ParseAs[TaskServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *TaskServiceConfig) validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}

	switch c.Identity.Provider {
	case IdentityProviderMicrosoft:
		if c.Identity.GraphMeURL == "" {
			return fmt.Errorf("missing GRAPH_ME_URL environment variable")
		}
	case IdentityProviderGoogle:
	default:
		return fmt.Errorf("unsupported IDENTITY_PROVIDER %q", c.Identity.Provider)
	}

	switch c.AuthCache.Backend {
	case CacheBackendMemory:
		if c.AuthCache.Capacity <= 0 {
			return fmt.Errorf("AUTH_CACHE_CAPACITY must be positive")
		}
		if c.AuthCache.Shards <= 0 {
			return fmt.Errorf("AUTH_CACHE_SHARDS must be positive")
		}
	case CacheBackendRedis:
		if c.AuthCache.RedisURL == "" {
			return fmt.Errorf("missing REDIS_URL environment variable")
		}
	default:
		return fmt.Errorf("unsupported AUTH_CACHE_BACKEND %q", c.AuthCache.Backend)
	}

	if c.AuthCache.TTL <= 0 {
		return fmt.Errorf("AUTH_CACHE_TTL must be positive")
	}

	if c.Discovery.ConsulAddr != "" && c.Discovery.ServicePort == 0 {
		return fmt.Errorf("missing SERVICE_PORT environment variable")
	}

	return nil
}
