// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yomira Kids HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Load the embedded catalog and seed the in-memory store.
//  4. Start the change feed broadcaster.
//  5. Connect to Redis and start the relay (only when REDIS_URL is set).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/yomira-kids/internal/api"
	"github.com/taibuivan/yomira-kids/internal/core/book"
	"github.com/taibuivan/yomira-kids/internal/feed"
	"github.com/taibuivan/yomira-kids/internal/platform/config"
	"github.com/taibuivan/yomira-kids/internal/platform/constants"
	redisstore "github.com/taibuivan/yomira-kids/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("relay_enabled", cfg.RelayEnabled()),
	)

	// Root context: cancelled on SIGINT/SIGTERM, stops every background loop.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// ── 3. Catalog ────────────────────────────────────────────────────────
	books, err := book.LoadCatalog()
	must(log, err, "load catalog")

	store, err := book.NewMemoryStore(books)
	must(log, err, "seed catalog store")

	log.Info("catalog_loaded", slog.Int("books", store.Len()))

	// ── 4. Change Feed ────────────────────────────────────────────────────
	broadcaster := feed.NewBroadcaster(log)
	go broadcaster.Run(rootCtx)
	defer store.Subscribe(broadcaster.Notify)()

	health := api.HealthDependencies{
		CheckCatalog: func() error {
			if store.Len() == 0 {
				return errors.New("catalog is empty")
			}
			return nil
		},
	}

	// ── 5. Redis Relay (optional) ─────────────────────────────────────────
	if cfg.RelayEnabled() {
		startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		startupCancel()
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		relay := feed.NewRedisRelay(rdb, cfg.RedisChannel, log)
		go relay.Run(rootCtx)
		defer store.Subscribe(relay.Notify)()

		health.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}

		log.Info("relay_started", slog.String("channel", cfg.RedisChannel))
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(health, log)

	bookService := book.NewService(store, cfg.FeaturedCount)
	bookHandler := book.NewHandler(bookService)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Book:      bookHandler,
		Feed:      broadcaster,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Open SSE streams end once the root context is cancelled.
	stop()

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger with the global app attribute.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", fmt.Errorf("%s: %w", context, err)),
		)
		os.Exit(1)
	}
}
