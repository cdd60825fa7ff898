package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/greenharvest/greenharvest-backend/config"
	"github.com/greenharvest/greenharvest-backend/internal/app/controller"
	"github.com/greenharvest/greenharvest-backend/internal/app/repository"
	"github.com/greenharvest/greenharvest-backend/internal/app/service"
	"github.com/greenharvest/greenharvest-backend/internal/cart"
	"github.com/greenharvest/greenharvest-backend/internal/db"
	"github.com/greenharvest/greenharvest-backend/internal/middleware"
	"github.com/greenharvest/greenharvest-backend/internal/router"
	"github.com/greenharvest/greenharvest-backend/internal/scheduler"
	"github.com/greenharvest/greenharvest-backend/internal/storage"
	"github.com/greenharvest/greenharvest-backend/pkg/logger"
	"github.com/greenharvest/greenharvest-backend/pkg/redis"
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

	logger.Info("Starting GreenHarvest Backend Server", map[string]interface{}{
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

	// Initialize Redis. The server still works without it: carts fall
	// back to file slots and token revocation is skipped.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, using file-backed cart storage", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	farmerRepo := repository.NewFarmerRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	bookingRepo := repository.NewBookingRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		farmerRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	farmerService := service.NewFarmerService(farmerRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, farmerRepo)
	cartService := service.NewCartService(productRepo, cartStorageFactory(cfg))
	bookingService := service.NewBookingService(bookingRepo, productRepo, farmerRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, cartService, db.GetDB())
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)

	// Initialize S3 storage for image uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.Secret)
	farmerController := controller.NewFarmerController(farmerService, authService)
	productController := controller.NewProductController(productService, categoryService)
	cartController := controller.NewCartController(cartService)
	bookingController := controller.NewBookingController(bookingService)
	orderController := controller.NewOrderController(orderService)
	wishlistController := controller.NewWishlistController(wishlistService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the daily booking sweep
	bookingScheduler := scheduler.NewBookingScheduler(bookingService)
	if err := bookingScheduler.Start(); err != nil {
		logger.Fatal("Failed to start booking scheduler", err)
	}
	defer bookingScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		farmerController,
		productController,
		cartController,
		bookingController,
		orderController,
		wishlistController,
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

// cartStorageFactory picks the per-user cart slot backend: Redis when
// connected, a JSON file under the cart data dir otherwise.
func cartStorageFactory(cfg *config.Config) service.StorageFactory {
	return func(userID uint) cart.Storage {
		if redis.GetClient() != nil {
			return cart.NewRedisStorage(redis.GetClient(), userID)
		}
		path := filepath.Join(cfg.Cart.DataDir, strconv.FormatUint(uint64(userID), 10)+".json")
		return cart.NewFileStorage(path)
	}
}
