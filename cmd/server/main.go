package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/router"
	"github.com/iliyamo/venue-booking/internal/service"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	logger := log.New(cfg.LogLevel, cfg.LogFormat).WithField(log.FldVersion, version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
	logger.Info("Server exited")
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Entry) error {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.WithField("db", cfg.DB.Host+":"+cfg.DB.Port+"/"+cfg.DB.Name).Info("Connected to database")

	if cfg.DB.MigrateOnStart {
		database.SetLogger(logger.WithField(log.FldComponent, "migrate"))
		if err := database.Migrate(db.DB); err != nil {
			return err
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("Redis unavailable: response cache off, in-process rate limiting")
	} else {
		defer rdb.Close()
	}

	if cfg.NotifyEnabled && cfg.NotifyConsumerEnabled {
		consumer := queue.NewConsumer(cfg.RabbitMQURL, queue.DefaultLogPath, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.WithError(err).Error("Seat request consumer stopped")
			}
		}()
	}

	e := router.New(buildHandlers(cfg, db, logger), router.Options{
		JWTSecret:    cfg.Auth.JWTSecret,
		AuthRequired: cfg.Auth.Required,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		Cache:        config.LoadCacheConfig(),
		RateLimit:    config.LoadRateLimitConfig(),
		Redis:        rdb,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).WithField("env", cfg.Env).Info("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildHandlers(cfg config.Config, db *sqlx.DB, logger *logrus.Entry) router.Handlers {
	events := repository.NewEventRepo(db, logger)
	seating := repository.NewSeatingRepo(db, logger)
	requests := repository.NewSeatRequestRepo(db, logger)
	suggestions := repository.NewSuggestionRepo(db, logger)
	business := repository.NewSettingsRepo(db, repository.BusinessSettingsTable, logger)
	stage := repository.NewSettingsRepo(db, repository.StageSettingsTable, logger)
	history := repository.NewLayoutHistoryRepo(db, logger, cfg.LayoutHistoryMax, cfg.LayoutHistoryRetentionDays)
	stats := repository.NewStatsRepo(db)
	admins := repository.NewAdminRepo(db)

	publisher := service.NewPublisher(cfg.RabbitMQURL, cfg.NotifyEnabled, logger)

	return router.Handlers{
		Auth:          handler.NewAuthHandler(cfg.Auth, admins, logger),
		Health:        handler.NewHealthHandler(stats, logger),
		Dashboard:     handler.NewDashboardHandler(stats, logger),
		Events:        handler.NewEventHandler(events, logger),
		Seating:       handler.NewSeatingHandler(seating, logger),
		SeatRequests:  handler.NewSeatRequestHandler(requests, publisher, logger),
		Suggestions:   handler.NewSuggestionHandler(suggestions, logger),
		Business:      handler.NewSettingsHandler(business, "business_settings", logger),
		Stage:         handler.NewSettingsHandler(stage, "stage_settings", logger),
		LayoutHistory: handler.NewLayoutHistoryHandler(history, logger),
	}
}
