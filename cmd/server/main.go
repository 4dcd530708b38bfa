package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	fiberadapter "github.com/lborres/tasuku/adapters/fiber"
	pgxadapter "github.com/lborres/tasuku/adapters/pgx"
	"github.com/lborres/tasuku/core"
	"github.com/lborres/tasuku/internal/config"
	"github.com/lborres/tasuku/internal/jobs"
	"github.com/lborres/tasuku/pkg/cache"
	"github.com/lborres/tasuku/services"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pgxadapter.Migrate(ctx, cfg.DatabaseURL); err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	storage := pgxadapter.New(pool)

	var sessionCache core.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sessionCache = cache.NewRedisCache(client, cfg.SessionTTL)
		log.Info("session cache enabled", "addr", cfg.RedisAddr)
	} else {
		sessionCache = cache.NewInMemoryCache(core.CacheConfig{TTL: cfg.SessionTTL})
	}

	var passwords core.PasswordHandler = core.NewStretchSHA256()
	if cfg.PasswordScheme == "argon2" {
		passwords = core.NewArgon2()
	}

	sessions := services.NewSessionManager(services.SessionConfig{TTL: cfg.SessionTTL}, storage, sessionCache)
	guard := services.NewGuard(sessions)
	auth := services.NewAuthService(storage, passwords, sessions)
	tags := services.NewTagReconciler(storage)
	tasks := services.NewTaskService(storage, tags, guard)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CORSAllowedOrigins},
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType},
	}))

	fiberadapter.New(app, auth, tasks, guard).RegisterRoutes()

	// The sweeper needs Redis; without it lazy expiry on resolve is the
	// only cleanup.
	if cfg.RedisAddr != "" {
		sweeper, err := jobs.NewSweeper(cfg.RedisAddr, "@every "+cfg.SweepInterval.String(), sessions, log)
		if err != nil {
			return err
		}
		if err := sweeper.Start(); err != nil {
			return err
		}
		defer sweeper.Shutdown()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.ListenAddr)
	}()
	log.Info("server listening", "addr", cfg.ListenAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}
