// Copyright (c) 2026 Holocron. All rights reserved.

package api

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"holocron/internal/character"
	"holocron/internal/platform/config"
	"holocron/internal/platform/migration"
	pgstore "holocron/internal/platform/postgres"
	redisstore "holocron/internal/platform/redis"
)

// App bundles the expensive warm resources (connection pools) with the fully
// wired HTTP server. It is built once per process and reused across
// invocations — the lazy-singleton shape cold-start-sensitive hosts need,
// where the process may be frozen and thawed between requests but is never
// torn down mid-life.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Pool   *pgxpool.Pool
	Redis  *goredis.Client // nil when REDIS_URL is unset
	Server *Server

	cancel context.CancelFunc
}

var (
	appOnce   sync.Once
	sharedApp *App
	sharedErr error
)

// Shared returns the process-wide App, building it on first use.
//
// Subsequent calls return the cached instance regardless of arguments; the
// ctx and log of the first caller win.
func Shared(ctx context.Context, log *slog.Logger) (*App, error) {
	appOnce.Do(func() {
		sharedApp, sharedErr = newApp(ctx, log)
	})
	return sharedApp, sharedErr
}

// newApp performs the full startup sequence: config, PostgreSQL, Redis,
// migrations, and domain wiring.
func newApp(ctx context.Context, log *slog.Logger) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			pool.Close()
			return nil, err
		}
	} else {
		log.Info("redis_not_configured", slog.String("fallback", "in-process rate limiting"))
	}

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		closeResources(pool, rdb, log)
		return nil, err
	}

	// # Health handlers (wired with real dependency checkers)
	deps := HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
	}
	if rdb != nil {
		deps.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}
	liveness, readiness := NewHealthHandlers(deps, log)

	// # Domain Wiring
	characterRepository := character.NewPostgresRepository(pool)
	characterService := character.NewService(characterRepository, log)
	characterHandler := character.NewHandler(characterService)

	handlers := Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Character: characterHandler,
	}

	// The server outlives the startup deadline; its context is only cancelled
	// by Close, so the rate limiter's background sweep runs for the process
	// lifetime.
	serverCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	return &App{
		Config: cfg,
		Log:    log,
		Pool:   pool,
		Redis:  rdb,
		Server: NewServer(serverCtx, cfg, log, rdb, handlers),
		cancel: cancel,
	}, nil
}

// Close releases the App's connection resources. Long-running hosts call it
// on shutdown; frozen hosts never do, which is fine — the pools are owned by
// the process lifecycle.
func (app *App) Close() {
	app.cancel()
	closeResources(app.Pool, app.Redis, app.Log)
}

func closeResources(pool *pgxpool.Pool, rdb *goredis.Client, log *slog.Logger) {
	if pool != nil {
		log.Info("closing postgres pool")
		pool.Close()
	}
	if rdb != nil {
		log.Info("closing redis client")
		if err := rdb.Close(); err != nil {
			log.Error("redis close error", slog.Any("error", err))
		}
	}
}
