package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fleet-mileage-monitor/internal/config"
	"fleet-mileage-monitor/internal/delivery/http/handler"
	"fleet-mileage-monitor/internal/infrastructure/database/postgres"
	"fleet-mileage-monitor/internal/infrastructure/ecuatracker"
	"fleet-mileage-monitor/internal/infrastructure/events"
	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/internal/middleware"
	"fleet-mileage-monitor/internal/observability"
	"fleet-mileage-monitor/internal/usecase/mileage"
	"fleet-mileage-monitor/internal/usecase/vehicle"
)

// Dependencies are the long-lived clients owned by main.
type Dependencies struct {
	DB       *postgres.DB
	Provider *ecuatracker.Client
	// Broadcaster is nil when no MQTT broker is configured.
	Broadcaster *events.ThresholdBroadcaster
	Metrics     *observability.Metrics
}

func SetupRoutes(cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Order: recovery, request ID, logging, security headers, CORS, body size
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(deps.Metrics))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))

	router.GET("/health", func(c *gin.Context) {
		if err := deps.DB.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	vehicleRepository := postgres.NewVehicleRepository(deps.DB)
	rangeRepository := postgres.NewRangeRepository(deps.DB)

	rangeCache := mileage.NewRangeCache()
	classifier := mileage.NewClassifier(rangeRepository, rangeCache)
	gateway := mileage.NewGateway(deps.Provider, cfg.Report.ChunkSize, cfg.Report.ChunkConcurrency, deps.Metrics)
	reportService := mileage.NewService(vehicleRepository, gateway, classifier, deps.Metrics, cfg.Report.MaxRangeDays)
	reportHandler := handler.NewReportHandler(reportService)

	var publisher mileage.ThresholdPublisher
	if deps.Broadcaster != nil {
		publisher = deps.Broadcaster
		if err := deps.Broadcaster.Listen(rangeCache); err != nil {
			logger.Warn("Threshold events unavailable, peers will not invalidate this cache", zap.Error(err))
		}
	}
	thresholdService := mileage.NewThresholdService(rangeRepository, classifier, rangeCache, publisher)
	thresholdHandler := handler.NewThresholdHandler(thresholdService)

	vehicleService := vehicle.NewService(vehicleRepository)
	syncService := vehicle.NewSyncService(deps.Provider, vehicleRepository)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, syncService)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
		protected.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))
		{
			reportHandler.RegisterRoutes(protected)
			thresholdHandler.RegisterRoutes(protected)
			vehicleHandler.RegisterRoutes(protected)

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				thresholdHandler.RegisterAdminRoutes(admin)
				vehicleHandler.RegisterAdminRoutes(admin.Group("/admin"))
			}
		}
	}

	return router
}
