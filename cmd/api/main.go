package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	_ "github.com/maayan-lessons/booking-api/api/swagger"
	"github.com/maayan-lessons/booking-api/internal/handler"
	"github.com/maayan-lessons/booking-api/internal/repository"
	"github.com/maayan-lessons/booking-api/internal/service"
	"github.com/maayan-lessons/booking-api/pkg/cache"
	"github.com/maayan-lessons/booking-api/pkg/config"
	"github.com/maayan-lessons/booking-api/pkg/database"
	"github.com/maayan-lessons/booking-api/pkg/logger"
	"github.com/maayan-lessons/booking-api/pkg/mailer"
)

// @title Lesson Booking API
// @version 1.0.0
// @description Weekly lesson booking for a single tutor.
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
	}

	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()
	if err := service.RegisterPhoneValidation(validate); err != nil {
		logr.Sugar().Fatalw("failed to register validators", "error", err)
	}

	metrics := service.NewMetricsService()

	// Avoid wrapping a nil *ResendClient in a non-nil interface value.
	var sender mailer.Sender
	if client := mailer.NewResendClient(cfg.Mail); client != nil {
		sender = client
	}

	notificationSvc := service.NewNotificationService(sender, settingsRepo, cfg.Mail.Owner, cfg.Mail.Workers, logr)
	notificationSvc.Start(ctx)
	defer notificationSvc.Stop()

	authSvc := service.NewAuthService(cfg.Session, logr)
	slotSvc := service.NewSlotService(slotRepo, bookingRepo, settingsRepo, cacheRepo, cfg.Cache.WeekTTL, logr)
	scheduleSvc := service.NewScheduleService(slotRepo, settingsRepo, cacheRepo, nil,
		cfg.Schedule.LessonMinutes, cfg.Schedule.BufferMinutes, cfg.Schedule.DefaultTZ, logr)
	bookingSvc := service.NewBookingService(slotRepo, cacheRepo, notificationSvc, metrics, validate, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, cacheRepo, cfg.Schedule.DefaultTZ, logr)
	exportSvc := service.NewExportService(slotRepo, bookingRepo, settingsRepo, logr)

	router := handler.NewRouter(handler.Deps{
		Cfg:           cfg,
		Logger:        logr,
		DB:            db,
		Auth:          authSvc,
		Slots:         slotSvc,
		Schedule:      scheduleSvc,
		Bookings:      bookingSvc,
		Settings:      settingsSvc,
		Exports:       exportSvc,
		Notifications: notificationSvc,
		Metrics:       metrics,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
