package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/audit"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/cache"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/config"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/db"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/metrics"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/relay"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/routes"
)

func main() {
	if err := run(); err != nil {
		fatalLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fatalLog.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// DATABASE
	// ======================================================
	gdb, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(gdb); cerr != nil {
			log.Error().Err(cerr).Msg("closing database")
		}
	}()
	log.Info().Msg("database connected and migrated")

	// ======================================================
	// CACHE
	// ======================================================
	var statsCache cache.Cache = cache.NewNoop()
	if cfg.RedisEnabled() {
		rc := cache.NewRedis(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, log)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, stats cache disabled")
			_ = rc.Close()
		} else {
			statsCache = rc
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis stats cache enabled")
		}
	}
	defer func() {
		if cerr := statsCache.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("closing cache")
		}
	}()

	// ======================================================
	// BACKGROUND WORKERS
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(gdb), log)
	defer auditDispatcher.Close()

	hub := relay.NewHub()
	defer hub.Close()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.Register(r, routes.Deps{
		DB:      gdb,
		Cache:   statsCache,
		Hub:     hub,
		Metrics: metrics.Registry("tsugo"),
		Audit:   auditDispatcher,
		Log:     log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stdout)
	if cfg.AppEnv == "dev" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return out.Level(level).With().Timestamp().Str("service", "tsugo-server").Logger()
}
