package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Chakraaaa/taskflow/internal/infra/config"
	"github.com/Chakraaaa/taskflow/internal/infra/database"
	"github.com/Chakraaaa/taskflow/internal/infra/logger"
	redisinfra "github.com/Chakraaaa/taskflow/internal/infra/redis"
	"github.com/Chakraaaa/taskflow/internal/infra/security"
	postgresrepo "github.com/Chakraaaa/taskflow/internal/repository/postgres"
	redisrepo "github.com/Chakraaaa/taskflow/internal/repository/redis"
	"github.com/Chakraaaa/taskflow/internal/transport/http/middleware"
	"github.com/Chakraaaa/taskflow/internal/transport/http/routes"
	"github.com/Chakraaaa/taskflow/internal/usecase"
)

// Application owns the wired service graph and the HTTP server lifecycle.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
}

// New builds the full application from configuration: logger, storage,
// security primitives, services, and the HTTP engine.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	tokenManager, err := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.App.Name)
	if err != nil {
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	authService := usecase.NewAuthService(repos.Users, tokenManager, log)
	registrationService := usecase.NewRegistrationService(repos.Users).WithLogger(log)
	periodService := usecase.NewPeriodService(repos.Periods)
	taskService := usecase.NewTaskService(repos.Tasks, repos.Periods)

	deps := routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Database: pool,
		Services: routes.ServiceSet{
			Auth:         authService,
			Registration: registrationService,
			Periods:      periodService,
			Tasks:        taskService,
		},
	}

	var redisClient *redisinfra.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redisinfra.NewClient(cfg.Redis, log)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init redis: %w", err)
		}

		rateLimitWindow := cfg.RateLimit.WindowDuration
		if rateLimitWindow <= 0 {
			rateLimitWindow = time.Minute
		}
		rateLimitStore := redisrepo.NewRateLimitStore(redisClient.Client(), redisrepo.SlidingWindowConfig{
			KeyPrefix: "taskflow:rate-limit",
			TTL:       rateLimitWindow * 2,
		})

		deps.RateLimiter = middleware.NewRateLimiter(rateLimitStore, log)
		deps.Cache = redisClient
	} else {
		log.Info("redis not configured, rate limiting disabled")
	}

	engine := routes.Register(deps)

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
	}, nil
}

// Run serves HTTP traffic until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting taskflow API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
