package main

import (
	"alcyxob/fitness-center/internal/api"
	"alcyxob/fitness-center/internal/config"
	"alcyxob/fitness-center/internal/logger"
	"alcyxob/fitness-center/internal/repository/mongo"
	"alcyxob/fitness-center/internal/service"
	"alcyxob/fitness-center/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Fitness Center API
// @version 1.0
// @description Accounts, trainer discovery, session requests, subscriptions, payments, notifications and feedback for a fitness center.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatalf("Could not load config: %v", err)
	}
	logger.Init(cfg.Server.Debug)
	logger.Info("Starting Fitness Center Server...")

	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer func() {
		logger.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Infof("Connected to database %q", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		ensure := map[string]func(context.Context) error{
			"accounts": func(ctx context.Context) error {
				return mongo.EnsureAccountIndexes(ctx, appDB.Collection("accounts"))
			},
			"payments": func(ctx context.Context) error {
				return mongo.EnsurePaymentIndexes(ctx, appDB.Collection("payments"))
			},
			"session_requests": func(ctx context.Context) error {
				return mongo.EnsureSessionRequestIndexes(ctx, appDB.Collection("session_requests"))
			},
			"notification_history": func(ctx context.Context) error {
				return mongo.EnsureNotificationHistoryIndexes(ctx, appDB.Collection("notification_history"))
			},
		}
		for name, fn := range ensure {
			if err := fn(ctx); err != nil {
				logger.Errorf("Index creation for %s failed: %v", name, err)
			}
		}
		logger.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	fileStorage, err := storage.NewS3Storage(initCtx, cfg.S3)
	cancelInit()
	if err != nil {
		logger.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	accountRepo := mongo.NewMongoAccountRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	paymentRepo := mongo.NewMongoPaymentRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRequestRepository(appDB)
	historyRepo := mongo.NewMongoNotificationHistoryRepository(appDB)
	feedbackRepo := mongo.NewMongoFeedbackRepository(appDB)
	tx := mongo.NewTransactor(dbClient, cfg.Database.Transactions)

	// --- Initialize Services ---
	services := api.Services{
		Auth:          service.NewAuthService(accountRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.Auth.AdminSignupKey),
		Accounts:      service.NewAccountService(accountRepo, fileStorage),
		Plans:         service.NewPlanService(planRepo),
		Subscriptions: service.NewSubscriptionService(planRepo, paymentRepo, accountRepo, tx, fileStorage),
		Sessions:      service.NewSessionRequestService(sessionRepo, accountRepo, cfg.Notifications.MaxPerAccount),
		Notifications: service.NewNotificationService(accountRepo, historyRepo, cfg.Notifications.MaxPerAccount, cfg.Notifications.HistoryLimit),
		Feedback:      service.NewFeedbackService(feedbackRepo, accountRepo),
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api.SetupRoutes(router, services, api.RouteOptions{
		JWTSecret:     cfg.JWT.Secret,
		AuthRateLimit: cfg.RateLimit.RPS,
		AuthBurst:     cfg.RateLimit.Burst,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Infof("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("ListenAndServe Error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exiting.")
}
