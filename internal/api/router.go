package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swiftcourier/tracking-api/internal/api/handler"
	"github.com/swiftcourier/tracking-api/internal/api/middleware"
	"github.com/swiftcourier/tracking-api/internal/core/service"
	mongodb "github.com/swiftcourier/tracking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/swiftcourier/tracking-api/internal/infrastructure/db/redis"
	"github.com/swiftcourier/tracking-api/internal/infrastructure/notify"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracking"))

	// --- Dependencies ---
	shipmentRepo := mongodb.NewShipmentRepository(client, db)
	eventRepo := mongodb.NewEventRepository(client, db)
	userRepo := mongodb.NewUserRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	cache := redisdb.NewTrackingCache(rdb)
	notifier := notify.NewRedisNotifier(rdb)

	notificationService := service.NewNotificationService(notifier, notificationRepo, log)
	shipmentService := service.NewShipmentService(shipmentRepo, eventRepo, cache, log)
	eventService := service.NewEventService(shipmentRepo, eventRepo, cache, notificationService, log)
	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)

	authHandler := handler.NewAuthHandler(authService)
	trackingHandler := handler.NewTrackingHandler(shipmentService, eventService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	eventHandler := handler.NewEventHandler(eventService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	authRequired := middleware.Auth(jwtSecret)
	adminOnly := middleware.AdminOnly()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public tracking (tracking-number knowledge is the capability) ---
	e.GET("/api/track/:tracking_number", trackingHandler.Get)
	e.GET("/api/track/:tracking_number/events", trackingHandler.Events)

	// --- Admin write path ---
	e.POST("/api/track/:tracking_number/update", eventHandler.Update, authRequired, adminOnly)

	// --- Authenticated shipment and notification routes ---
	e.POST("/api/shipments", shipmentHandler.Create, authRequired)
	e.GET("/api/shipments", shipmentHandler.List, authRequired)
	e.GET("/api/shipments/:tracking_number", shipmentHandler.Get, authRequired)
	e.GET("/api/notifications", notificationHandler.List, authRequired)
	e.POST("/api/notifications/:id/read", notificationHandler.MarkRead, authRequired)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
