package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/maayan-lessons/booking-api/internal/middleware"
	"github.com/maayan-lessons/booking-api/internal/service"
	"github.com/maayan-lessons/booking-api/pkg/config"
	"github.com/maayan-lessons/booking-api/pkg/logger"
	corsmiddleware "github.com/maayan-lessons/booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/maayan-lessons/booking-api/pkg/middleware/requestid"
)

// Deps bundles everything the router needs.
type Deps struct {
	Cfg           *config.Config
	Logger        *zap.Logger
	DB            *sqlx.DB
	Auth          AuthService
	Slots         SlotService
	Schedule      ScheduleService
	Bookings      BookingService
	Settings      SettingsService
	Exports       ExportService
	Notifications NotificationService
	Metrics       *service.MetricsService
}

// NewRouter assembles the gin engine: global middleware, public routes,
// and the session-gated admin group.
func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Cfg.CORS.AllowedOrigins))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if d.DB != nil {
			if err := d.DB.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	if d.Cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := NewAuthHandler(d.Auth, d.Cfg.Env == config.EnvProduction)
	slotHandler := NewSlotHandler(d.Slots, d.Schedule)
	bookingHandler := NewBookingHandler(d.Bookings)
	settingsHandler := NewSettingsHandler(d.Settings)
	exportHandler := NewExportHandler(d.Exports)
	notificationHandler := NewNotificationHandler(d.Notifications)

	api := r.Group(d.Cfg.APIPrefix)
	{
		api.GET("/slots", slotHandler.PublicWeek)
		api.POST("/book", bookingHandler.Book)
		api.GET("/settings", settingsHandler.Get)
		api.POST("/settings", middleware.SessionAuth(d.Auth), settingsHandler.Update)

		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/logout", authHandler.Logout)

		admin := api.Group("/admin", middleware.SessionAuth(d.Auth))
		{
			admin.GET("/slots", slotHandler.AdminWeek)
			admin.POST("/create-slot", slotHandler.CreateSlot)
			admin.POST("/block-slot", slotHandler.BlockSlot)
			admin.POST("/release-slot", slotHandler.ReleaseSlot)
			admin.POST("/block-day", slotHandler.BlockDay)
			admin.POST("/release-day", slotHandler.ReleaseDay)
			admin.POST("/seed-weeks", slotHandler.SeedWeeks)
			admin.GET("/export", exportHandler.Week)
			admin.POST("/test-email", notificationHandler.TestEmail)
		}
	}

	return r
}
