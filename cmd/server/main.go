package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/config"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/controller"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/service"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/db"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/middleware"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/router"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/scheduler"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/storage"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/notification/email"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/notification/whatsapp"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting storefront backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis for token revocation and login rate limiting
	var loginLimiter *redis.LoginLimiter
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation and rate limiting disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
		loginLimiter = redis.NewLoginLimiter(redis.GetClient(), 5, cfg.JWT.TokenExpiry)
	}

	// Repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	customerRepo := repository.NewCustomerRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())

	// Notification channels
	var emailSender email.Sender
	if cfg.SendGrid.APIKey != "" {
		emailSender = email.NewSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Warn("SendGrid not configured, email notifications disabled", nil)
	}

	var whatsappClient *whatsapp.Client
	if cfg.WhatsApp.AccessToken != "" {
		whatsappClient, err = whatsapp.NewClient(whatsapp.Config{
			AccessToken:   cfg.WhatsApp.AccessToken,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			BaseURL:       cfg.WhatsApp.BaseURL,
		})
		if err != nil {
			logger.Warn("WhatsApp client misconfigured, WhatsApp notifications disabled", map[string]interface{}{
				"error": err.Error(),
			})
		}
	} else {
		logger.Warn("WhatsApp not configured, WhatsApp notifications disabled", nil)
	}

	// Services
	codeService := service.NewCodeService(productRepo, variantRepo)
	productService := service.NewProductService(productRepo, variantRepo, categoryRepo, codeService)
	cartService := service.NewCartService(cartRepo, productRepo, variantRepo, cfg.Cart.GuestTTL)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	notificationService := service.NewNotificationService(notificationRepo, emailSender, whatsappClient)
	orderService := service.NewOrderService(orderRepo, cartRepo, customerRepo, variantRepo, notificationService)
	customerService := service.NewCustomerService(customerRepo, orderRepo)
	authService := service.NewAuthService(cfg, loginLimiter)

	// Image storage
	var uploader controller.Uploader
	if cfg.S3.Bucket != "" {
		uploader = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	} else {
		logger.Warn("S3 not configured, product images will be stored inline", nil)
	}

	// Controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	categoryController := controller.NewCategoryController(categoryRepo)
	cartController := controller.NewCartController(cartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	orderController := controller.NewOrderController(orderService, notificationService)
	customerController := controller.NewCustomerController(customerService)
	uploadController := controller.NewUploadController(uploader)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Expired guest cart sweep
	cartCleanup := scheduler.NewCartCleanupScheduler(cartService, cfg.Cart.SweepSchedule)
	if err := cartCleanup.Start(); err != nil {
		logger.Warn("Cart cleanup scheduler failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer cartCleanup.Stop()

	r := router.NewRouter(
		authController,
		productController,
		categoryController,
		cartController,
		wishlistController,
		orderController,
		customerController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped")
}
