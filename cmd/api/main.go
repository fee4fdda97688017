package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voicebookhq/voicebook-backend/internal/cache"
	"github.com/voicebookhq/voicebook-backend/internal/config"
	dbpkg "github.com/voicebookhq/voicebook-backend/internal/db"
	"github.com/voicebookhq/voicebook-backend/internal/logging"
	"github.com/voicebookhq/voicebook-backend/internal/routes"
	"github.com/voicebookhq/voicebook-backend/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	validators.Register()

	database := dbpkg.Connect(cfg, log)
	if !database.Connected() {
		log.Warn("starting in degraded mode, database unavailable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisCache := cache.New(ctx, cfg)
	if redisCache == nil {
		log.Warn("redis unavailable, stats caching disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:     database,
		Cache:  redisCache,
		Config: cfg,
		Log:    log,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", cfg.Addr()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
