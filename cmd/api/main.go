package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/karbo/karbo-api/internal/config"
	"github.com/karbo/karbo-api/internal/domain/admin"
	"github.com/karbo/karbo-api/internal/domain/auth"
	"github.com/karbo/karbo-api/internal/domain/farmland"
	"github.com/karbo/karbo-api/internal/domain/listing"
	"github.com/karbo/karbo-api/internal/domain/marketplace"
	"github.com/karbo/karbo-api/internal/domain/notification"
	"github.com/karbo/karbo-api/internal/domain/payment"
	"github.com/karbo/karbo-api/internal/domain/user"
	"github.com/karbo/karbo-api/internal/domain/wallet"
	"github.com/karbo/karbo-api/internal/middleware"
	"github.com/karbo/karbo-api/internal/pkg/database"
	"github.com/karbo/karbo-api/internal/pkg/jwt"
	"github.com/karbo/karbo-api/internal/pkg/logger"
	"github.com/karbo/karbo-api/internal/pkg/razorpay"
	"github.com/karbo/karbo-api/internal/pkg/response"
	"github.com/karbo/karbo-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.Env)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Karbo API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	var docStorage storage.Storage
	if cfg.S3AccessKey != "" {
		s3Storage, err := storage.NewS3Storage(storage.Config{
			S3Endpoint:  cfg.S3Endpoint,
			S3Region:    cfg.S3Region,
			S3AccessKey: cfg.S3AccessKey,
			S3SecretKey: cfg.S3SecretKey,
			S3Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to init object storage")
		}
		docStorage = s3Storage
	} else {
		log.Warn().Msg("Object storage not configured, document uploads disabled")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	gateway := razorpay.NewClient(razorpay.Config{
		BaseURL:   cfg.RazorpayBaseURL,
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
	})

	carbonPolicy := farmland.CarbonPolicy{
		Multipliers:  cfg.CarbonMultipliers,
		PricePerUnit: cfg.CarbonEstimatePrice,
	}

	// Repositories
	userRepo := user.NewRepository(db)
	farmlandRepo := farmland.NewRepository(db)
	listingRepo := listing.NewRepository(db)
	marketplaceRepo := marketplace.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// Services
	notificationService := notification.NewService(notificationRepo)
	authService := auth.NewService(userRepo, jwtService, rdb)
	farmlandService := farmland.NewService(farmlandRepo, userRepo, docStorage, carbonPolicy)
	listingService := listing.NewService(listingRepo, userRepo, farmlandRepo)
	marketplaceService := marketplace.NewService(marketplaceRepo, rdb, cfg.MarketplaceCacheTTL)
	walletService := wallet.NewService(walletRepo)
	paymentService := payment.NewService(
		paymentRepo, listingRepo, userRepo, walletRepo,
		gateway, notificationService,
		cfg.RazorpayKeySecret, cfg.PaymentCurrency,
	)
	adminService := admin.NewService(userRepo, farmlandRepo, notificationService)

	// Handlers
	authHandler := auth.NewHandler(authService)
	farmlandHandler := farmland.NewHandler(farmlandService)
	listingHandler := listing.NewHandler(listingService)
	marketplaceHandler := marketplace.NewHandler(marketplaceService)
	walletHandler := wallet.NewHandler(walletService)
	paymentHandler := payment.NewHandler(paymentService, cfg.RazorpayKeyID)
	notificationHandler := notification.NewHandler(notificationService)
	adminHandler := admin.NewHandler(adminService, carbonPolicy)

	authMiddleware := middleware.Auth(jwtService)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/marketplace", marketplaceHandler.Routes())
		r.Mount("/farmlands", farmlandHandler.Routes(authMiddleware))
		r.Mount("/listings", listingHandler.Routes(authMiddleware))
		r.Mount("/payments", paymentHandler.Routes(authMiddleware))
		r.Mount("/wallet", walletHandler.Routes(authMiddleware))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))
	})

	r.Mount("/api/admin", adminHandler.Routes(authMiddleware))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
