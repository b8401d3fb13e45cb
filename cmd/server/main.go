package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Baaaki/portfolio/internal/cache"
	"github.com/Baaaki/portfolio/internal/config"
	"github.com/Baaaki/portfolio/internal/database"
	"github.com/Baaaki/portfolio/internal/repository"
	"github.com/Baaaki/portfolio/internal/router"
	"github.com/Baaaki/portfolio/internal/seed"
	"github.com/Baaaki/portfolio/internal/service"
	"github.com/Baaaki/portfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		logger.Log.Error("Server exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Log.Info("Config loaded successfully",
		zap.String("environment", cfg.Environment),
		zap.String("db_driver", cfg.DatabaseDriver),
	)
	if cfg.JWTExpiry == 0 {
		logger.Log.Warn("JWT_EXPIRY is not set, issued tokens never expire")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	projectCache := newProjectCache(ctx, cfg)
	defer projectCache.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	if _, err := seed.Run(ctx, userRepo, projectRepo, seed.Admin{
		Username:        cfg.SeedAdminUsername,
		Password:        cfg.SeedAdminPassword,
		DefaultPassword: cfg.UsesDefaultAdminPassword(),
	}); err != nil {
		return err
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	projectService := service.NewProjectService(projectRepo, projectCache)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := router.New(router.Deps{
		AuthService:    authService,
		ProjectService: projectService,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Registry:       registry,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		IsProduction:   cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting", zap.String("addr", cfg.ServerPort))
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Graceful shutdown failed", zap.Error(err))
		}
		logger.Log.Info("Server stopped")
		return nil
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// newProjectCache connects to Redis when configured. Without it the project
// list is always read from the database.
func newProjectCache(ctx context.Context, cfg *config.Config) cache.ProjectCache {
	if cfg.RedisURL == "" {
		logger.Log.Info("REDIS_URL not set, project cache disabled")
		return cache.NoopCache{}
	}

	c, err := cache.NewRedisProjectCache(ctx, cfg.RedisURL, cfg.ProjectCacheTTL)
	if err != nil {
		logger.Log.Warn("Redis unavailable, project cache disabled", zap.Error(err))
		return cache.NoopCache{}
	}

	logger.Log.Info("Project cache enabled", zap.Duration("ttl", cfg.ProjectCacheTTL))
	return c
}
