package main

import (
	"fmt"
	"log"
	"net/http"

	"kumbhsetu/internal/config"
	"kumbhsetu/internal/handlers"
	"kumbhsetu/internal/middleware"
	"kumbhsetu/internal/repositories/mongodb"
	"kumbhsetu/internal/services"
	"kumbhsetu/internal/utils"
	"kumbhsetu/pkg/cache"
	"kumbhsetu/pkg/database"
	"kumbhsetu/pkg/logger"
	"kumbhsetu/pkg/websocket"
	"kumbhsetu/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	// Redis is an optimization, not a dependency; the repositories work
	// with a nil cache.
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, running without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	wsHandler := websocket.NewHandler()
	hub := wsHandler.Hub()

	var repoCache mongodb.CacheService
	var analyticsCache services.CacheService
	if redisCache != nil {
		repoCache = redisCache
		analyticsCache = redisCache
	}

	userRepo := mongodb.NewUserRepository(db.Database, repoCache)
	sosRepo := mongodb.NewSOSRepository(db.Database, repoCache)
	lostFoundRepo := mongodb.NewLostFoundRepository(db, repoCache)
	medicalRepo := mongodb.NewMedicalCaseRepository(db.Database)
	registrationRepo := mongodb.NewRegistrationRepository(db.Database)

	gate := services.NewAccessControl()
	userService := services.NewUserService(userRepo, gate, cfg.Security.JWTSecret, appLogger)
	sosService := services.NewSOSService(sosRepo, gate, hub, appLogger)
	lostFoundService := services.NewLostFoundService(lostFoundRepo, registrationRepo, gate, appLogger)
	medicalService := services.NewMedicalService(medicalRepo, gate, hub, appLogger)
	registrationService := services.NewRegistrationService(registrationRepo, gate, hub, appLogger)
	analyticsService := services.NewAnalyticsService(registrationRepo, sosRepo, lostFoundRepo, medicalRepo, userRepo, gate, analyticsCache, appLogger)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	sosHandler := handlers.NewSOSHandler(sosService)
	lostFoundHandler := handlers.NewLostFoundHandler(lostFoundService)
	medicalHandler := handlers.NewMedicalHandler(medicalService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	auth := middleware.AuthMiddleware(cfg.Security.JWTSecret, userService)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg.Security.JWTSecret, userService)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, auth)
		routes.SetupUserRoutes(v1, userHandler, auth)
		routes.SetupSOSRoutes(v1, sosHandler, auth, optionalAuth)
		routes.SetupLostFoundRoutes(v1, lostFoundHandler, auth)
		routes.SetupMedicalRoutes(v1, medicalHandler, auth)
		routes.SetupRegistrationRoutes(v1, registrationHandler, auth, optionalAuth)
		routes.SetupAnalyticsRoutes(v1, analyticsHandler, auth)
		routes.SetupWebSocketRoutes(v1, wsHandler, auth)
	}

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":  "healthy",
			"version": utils.AppVersion,
			"clients": hub.ClientCount(),
		}
		if err := db.Ping(); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		}
		c.JSON(http.StatusOK, status)
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.WithField("addr", addr).Info("Starting server")
	if err := router.Run(addr); err != nil {
		appLogger.Fatalf("Server exited: %v", err)
	}
}
