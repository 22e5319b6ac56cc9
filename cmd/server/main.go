package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gocarpool/internal/config"
	"gocarpool/internal/handlers"
	"gocarpool/internal/middleware"
	"gocarpool/internal/repositories/mongodb"
	"gocarpool/internal/services"
	"gocarpool/pkg/cache"
	"gocarpool/pkg/database"
	"gocarpool/pkg/logger"
	"gocarpool/pkg/storage"
	"gocarpool/pkg/websocket"
	"gocarpool/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Colors: config.IsDevelopment(),
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

	if err := db.EnsureIndexes(); err != nil {
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}

	// Redis is optional; the repositories and rate limiter degrade gracefully
	// without it.
	var cacheService services.CacheService
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
		appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
	} else {
		cacheService = services.NewCacheService(redisCache)
		defer redisCache.Close()
	}

	storageProvider, err := buildStorage(cfg.Storage)
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	userRepo := mongodb.NewUserRepository(db.Database)
	rideRepo := mongodb.NewRideRepository(db.Database, cacheService)
	messageRepo := mongodb.NewMessageRepository(db.Database)

	authService := services.NewAuthService(userRepo, cfg.Security, appLogger)
	userService := services.NewUserService(userRepo, storageProvider, appLogger)
	rideService := services.NewRideService(rideRepo, userRepo, messageRepo, appLogger)
	chatService := services.NewChatService(messageRepo, rideRepo, userRepo, appLogger)

	wsHandler := websocket.NewHandler()

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	rideHandler := handlers.NewRideHandler(rideService, wsHandler)
	chatHandler := handlers.NewChatHandler(chatService, wsHandler)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(appLogger))
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RateLimit(cacheService, cfg.Security.RateLimitPerMinute))

	authRequired := middleware.AuthRequired(authService, cfg.Security.JWTSecret)

	api := router.Group("/api")
	{
		routes.SetupAuthRoutes(api, authHandler)
		routes.SetupRideRoutes(api, authRequired, rideHandler)

		protected := api.Group("")
		protected.Use(authRequired)
		{
			routes.SetupUserRoutes(protected, userHandler)
			routes.SetupChatRoutes(protected, chatHandler)
			routes.SetupWebSocketRoutes(protected, wsHandler)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{"status": "healthy", "version": cfg.App.Version}
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		c.JSON(status, body)
	})

	// Locally stored uploads are served straight from disk.
	if cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Infof("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func buildStorage(cfg *config.StorageConfig) (storage.StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return storage.NewAWSS3Storage(cfg.S3Region, cfg.S3Bucket)
	default:
		return storage.NewLocalStorage(cfg.LocalPath, cfg.BaseURL)
	}
}
