package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/venue-booking-directory/internal/config"
	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/handler"
	"github.com/iliyamo/venue-booking-directory/internal/logging"
	"github.com/iliyamo/venue-booking-directory/internal/middleware"
	"github.com/iliyamo/venue-booking-directory/internal/queue"
	"github.com/iliyamo/venue-booking-directory/internal/router"
	"github.com/iliyamo/venue-booking-directory/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		logging.Fatal().Err(err).Str("host", cfg.DBHost).Msg("open database")
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		logging.Fatal().Err(err).Msg("migrate database")
	}
	if len(applied) > 0 {
		logging.Info().Ints("versions", applied).Msg("applied migrations")
	}

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		logging.Warn().Msg("redis unreachable; cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	var events service.EventPublisher
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.RabbitURL)
	}
	dir := service.NewDirectory(db, events)

	if cfg.ConsumerEnabled {
		consumer := &queue.Consumer{URL: cfg.RabbitURL, Dir: cfg.ListingLogDir}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error().Err(err).Msg("listing consumer stopped")
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, db)
	router.RegisterDirectory(e, handler.NewDirectoryHandler(dir),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	addr := ":" + cfg.Port
	go func() {
		logging.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("http shutdown")
	}
	dir.Wait()
}
