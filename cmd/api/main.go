package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parvarish/internal/config"
	"parvarish/internal/database"
	"parvarish/internal/modules/notification"
	"parvarish/internal/pkg/logger"
	"parvarish/internal/pkg/metrics"
	"parvarish/internal/repository"
	"parvarish/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := database.NewProvider(cfg.DatabaseURL)
	db, err := provider.DB(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	hub := notification.NewHub()
	app := router.New(router.Deps{
		Config:  cfg,
		DB:      db,
		Pinger:  provider,
		Metrics: metrics.New(),
		Hub:     hub,
		Version: version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	app.Notifier.Wait()
	hub.Close()
	if err := provider.Close(); err != nil {
		log.Error().Err(err).Msg("database close failed")
	}
	log.Info().Msg("server stopped")
}
