package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/linsok/housing-analyzer-sub000/internal/config"
	"github.com/linsok/housing-analyzer-sub000/internal/database"
	"github.com/linsok/housing-analyzer-sub000/internal/middleware"
	"github.com/linsok/housing-analyzer-sub000/internal/modules/admin"
	"github.com/linsok/housing-analyzer-sub000/internal/modules/auth"
	"github.com/linsok/housing-analyzer-sub000/internal/modules/booking"
	"github.com/linsok/housing-analyzer-sub000/internal/modules/notification"
	"github.com/linsok/housing-analyzer-sub000/internal/modules/payment"
	"github.com/linsok/housing-analyzer-sub000/internal/modules/property"
	"github.com/linsok/housing-analyzer-sub000/internal/modules/recommend"
	"github.com/linsok/housing-analyzer-sub000/internal/modules/review"
	jwtsvc "github.com/linsok/housing-analyzer-sub000/internal/pkg/jwt"
	"github.com/linsok/housing-analyzer-sub000/internal/repository"
	"github.com/linsok/housing-analyzer-sub000/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	store, err := storage.New()
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Payment sessions live in Redis when available, in memory otherwise.
	var sessions payment.SessionStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		sessions = payment.NewRedisSessionStore(redis.NewClient(opts))
		log.Println("payment sessions: redis")
	} else {
		sessions = payment.NewMemorySessionStore()
		log.Println("payment sessions: in-memory (REDIS_URL not set)")
	}

	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	// Services.
	hub := notification.NewHub()
	defer hub.Close()
	notificationService := notification.NewService(notificationRepo, hub)

	authService := auth.NewService(userRepo, jwtService)
	adminService := admin.NewService(userRepo, propertyRepo)
	propertyService := property.NewService(propertyRepo, userRepo, favoriteRepo)
	bookingService := booking.NewService(bookingRepo, propertyRepo, sessions, store, notificationService)
	reviewService := review.NewService(reviewRepo, bookingRepo, propertyRepo)
	recommendService := recommend.NewService(propertyRepo)

	gateway := payment.NewBakongGateway(cfg.BakongBaseURL, cfg.BakongAPIToken)
	verifier := payment.NewVerifier(gateway, cfg.PollInterval, cfg.PollMaxAttempts)
	paymentService := payment.NewService(
		propertyRepo, userRepo, sessions, gateway, verifier,
		payment.MerchantConfig{
			BankAccount:  cfg.BakongBankAccount,
			MerchantName: cfg.BakongMerchantName,
			MerchantCity: cfg.BakongMerchantCity,
			PhoneNumber:  cfg.BakongPhoneNumber,
		},
		cfg.PaymentSessionTTL, cfg.PollMaxAttempts,
	)

	// Handlers.
	authHandler := auth.NewHandler(authService)
	adminHandler := admin.NewHandler(adminService)
	propertyHandler := property.NewHandler(propertyService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService)
	reviewHandler := review.NewHandler(reviewService)
	recommendHandler := recommend.NewHandler(recommendService)
	notificationHandler := notification.NewHandler(notificationService)
	wsHandler := notification.NewWSHandler(hub, jwtService, notificationService)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Local uploads are served directly; with S3 the URLs point at the
	// bucket instead.
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		r.Static("/uploads", dir)
	} else {
		r.Static("/uploads", "uploads")
	}

	api := r.Group("/api")
	authed := r.Group("/api", middleware.Auth(jwtService))

	authHandler.RegisterRoutes(api)
	authHandler.RegisterProtectedRoutes(authed)
	propertyHandler.RegisterRoutes(api, authed, middleware.OwnerOnly())
	bookingHandler.RegisterRoutes(authed)
	paymentHandler.RegisterRoutes(authed)
	reviewHandler.RegisterRoutes(api, authed)
	recommendHandler.RegisterRoutes(api, authed)
	notificationHandler.RegisterRoutes(authed)
	adminHandler.RegisterRoutes(authed, middleware.AdminOnly())

	r.GET("/ws/notifications", wsHandler.HandleWebSocket)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
