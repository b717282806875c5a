package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/config"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/handler"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/repository"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/usecase"
	"github.com/vasapolrittideah/task-management-api/shared/cache"
	"github.com/vasapolrittideah/task-management-api/shared/discovery"
	"github.com/vasapolrittideah/task-management-api/shared/interceptor"
	"github.com/vasapolrittideah/task-management-api/shared/logger"
	"github.com/vasapolrittideah/task-management-api/shared/provider"
	"github.com/vasapolrittideah/task-management-api/shared/utilities"
	"github.com/vasapolrittideah/task-management-api/shared/validator"
)

const (
	providerTimeout = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		l := logger.NewLogger(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.NewLogger(cfg.AppEnv, cfg.LogLevel)

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, log, db)
	taskRepo := repository.NewTaskMongoRepository(ctx, log, db)
	statusRepo := repository.NewTaskStatusMongoRepository(db)

	if err := statusRepo.SeedTaskStatuses(ctx, model.DefaultTaskStatuses()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed task statuses")
	}

	identityCache, closeCache := newIdentityCache(cfg, log)
	defer closeCache()

	authenticator := usecase.NewAuthenticator(
		newTokenValidator(cfg),
		userRepo,
		identityCache,
		cfg.AuthCache.TTL,
		log,
	)

	v, err := validator.NewValidator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: handler.NewRouter(handler.RouterConfig{
			Authenticator:     authenticator,
			TaskUsecase:       usecase.NewTaskUsecase(taskRepo, statusRepo, userRepo),
			TaskStatusUsecase: usecase.NewTaskStatusUsecase(statusRepo),
			UserUsecase:       usecase.NewUserUsecase(userRepo),
			Validator:         v,
			AllowedOrigins:    cfg.CORSAllowedOrigins,
			Logger:            log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptor.NewLoggingInterceptor(log, grpc_health_v1.Health_Check_FullMethodName)),
	)
	healthServer := utilities.RegisterHealthServer(grpcServer, cfg.Discovery.ServiceName)

	grpcListener, err := net.Listen("tcp", cfg.GRPCHealthAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.GRPCHealthAddr).Msg("failed to listen for gRPC health")
	}

	registrar := registerService(cfg, log)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info().Str("addr", cfg.GRPCHealthAddr).Msg("starting gRPC health server")
		return grpcServer.Serve(grpcListener)
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down")

		if registrar != nil {
			if err := registrar.Deregister(); err != nil {
				log.Error().Err(err).Msg("failed to deregister service")
			}
		}

		healthServer.Shutdown()
		grpcServer.GracefulStop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}

	log.Info().Msg("server exited properly")
}

func newTokenValidator(cfg *config.TaskServiceConfig) provider.TokenValidator {
	httpClient := &http.Client{Timeout: providerTimeout}

	if cfg.Identity.Provider == config.IdentityProviderGoogle {
		return provider.NewGoogleValidator(httpClient, cfg.Identity.GoogleUserinfoEndpoint)
	}
	return provider.NewMicrosoftGraphValidator(httpClient, cfg.Identity.GraphMeURL)
}

func newIdentityCache(cfg *config.TaskServiceConfig, log *zerolog.Logger) (usecase.IdentityCache, func()) {
	if cfg.AuthCache.Backend == config.CacheBackendRedis {
		c, client, err := cache.NewRedisFromURL[model.User](
			cfg.AuthCache.RedisURL,
			cfg.AuthCache.RedisKeyPrefix,
			cfg.AuthCache.TTL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Redis identity cache")
		}
		log.Info().Str("backend", cfg.AuthCache.Backend).Dur("ttl", cfg.AuthCache.TTL).Msg("identity cache ready")

		return c, func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis client")
			}
		}
	}

	log.Info().
		Str("backend", cfg.AuthCache.Backend).
		Int("capacity", cfg.AuthCache.Capacity).
		Dur("ttl", cfg.AuthCache.TTL).
		Msg("identity cache ready")

	return cache.NewMemory[model.User](cfg.AuthCache.Capacity, cfg.AuthCache.Shards, cfg.AuthCache.TTL), func() {}
}

func registerService(cfg *config.TaskServiceConfig, log *zerolog.Logger) *discovery.ConsulRegistrar {
	if cfg.Discovery.ConsulAddr == "" {
		return nil
	}

	registrar, err := discovery.NewConsulRegistrar(cfg.Discovery.ConsulAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Consul client")
	}

	err = registrar.Register(discovery.ServiceRegistration{
		Name:       cfg.Discovery.ServiceName,
		Host:       cfg.Discovery.ServiceHost,
		Port:       cfg.Discovery.ServicePort,
		HealthPath: "/healthz",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register service with Consul")
	}

	log.Info().
		Str("service", cfg.Discovery.ServiceName).
		Str("address", net.JoinHostPort(cfg.Discovery.ServiceHost, strconv.Itoa(cfg.Discovery.ServicePort))).
		Msg("registered service with Consul")

	return registrar
}
