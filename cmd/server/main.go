package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/myhome/myhome-backend/config"
	"github.com/myhome/myhome-backend/internal/app/controller"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/internal/app/service"
	"github.com/myhome/myhome-backend/internal/db"
	"github.com/myhome/myhome-backend/internal/middleware"
	"github.com/myhome/myhome-backend/internal/router"
	"github.com/myhome/myhome-backend/internal/scheduler"
	"github.com/myhome/myhome-backend/internal/storage"
	"github.com/myhome/myhome-backend/pkg/kakao"
	"github.com/myhome/myhome-backend/pkg/logger"
	"github.com/myhome/myhome-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting MYHOME Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize redis for geocode caching (optional)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Failed to connect to redis, geocode caching disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close redis connection", err)
				}
			}()
		}
	}

	// Initialize Kakao local API client
	kakaoClient, err := kakao.NewClient(&kakao.Config{
		RESTAPIKey: cfg.Kakao.RESTAPIKey,
		BaseURL:    cfg.Kakao.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize Kakao client", err)
	}
	geocoder := service.NewCachedGeocoder(kakaoClient, cfg.Redis.GeocodeCacheTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	propertyRepo := repository.NewPropertyRepository(db.GetDB())
	imageRepo := repository.NewPropertyImageRepository(db.GetDB())
	bookmarkRepo := repository.NewBookmarkRepository(db.GetDB())
	historyRepo := repository.NewSearchHistoryRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	propertyService := service.NewPropertyService(propertyRepo, imageRepo, historyRepo, geocoder)
	imageService := service.NewPropertyImageService(imageRepo, propertyRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, propertyRepo)
	searchService := service.NewSearchService(propertyRepo, historyRepo, geocoder, kakaoClient)

	// Initialize storage
	localStorage, err := storage.NewLocalStorage(
		cfg.Upload.Path,
		cfg.Upload.MaxFileSize,
		cfg.Upload.MaxWidth,
		cfg.Upload.MaxHeight,
	)
	if err != nil {
		logger.Fatal("Failed to initialize local storage", err)
	}
	var s3Storage *storage.S3Storage
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3Storage = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	}

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	propertyController := controller.NewPropertyController(propertyService)
	imageController := controller.NewPropertyImageController(imageService)
	bookmarkController := controller.NewBookmarkController(bookmarkService)
	searchController := controller.NewSearchController(searchService)
	uploadController := controller.NewUploadController(localStorage, s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start search history cleanup scheduler
	historyScheduler := scheduler.NewSearchHistoryScheduler(historyRepo, cfg.SearchHistory.RetentionDays)
	if err := historyScheduler.Start(); err != nil {
		logger.Warn("Failed to start search history scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer historyScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		propertyController,
		imageController,
		bookmarkController,
		searchController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
