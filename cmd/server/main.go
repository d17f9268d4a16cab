package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shareit-hub/service-shareit/internal/application"
	"github.com/shareit-hub/service-shareit/internal/config"
	bookingEvents "github.com/shareit-hub/service-shareit/internal/events"
	"github.com/shareit-hub/service-shareit/internal/handler"
	"github.com/shareit-hub/service-shareit/internal/repository"
	"github.com/shareit-hub/service-shareit/pkg/database"
	"github.com/shareit-hub/service-shareit/pkg/health"
	"github.com/shareit-hub/service-shareit/pkg/kafka"
	"github.com/shareit-hub/service-shareit/pkg/logger"
	"github.com/shareit-hub/service-shareit/pkg/middleware"
	"go.uber.org/zap"
)

const serviceName = "shareit-server"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database schema is up to date")

	checkers := map[string]health.Checker{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	requestRepo := repository.NewGormItemRequestRepository(db)

	// Item view cache is optional
	var viewCache application.ItemViewCache
	if cfg.RedisConfig.URL != "" {
		redisClient, err := repository.NewRedisClient(cfg.RedisConfig.URL)
		if err != nil {
			log.Fatal("failed to configure redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()

		cache := repository.NewRedisItemViewCache(redisClient, cfg.RedisConfig.TTL)
		viewCache = cache
		checkers["redis"] = cache.Ping
		log.Info("item view cache enabled", zap.Duration("ttl", cfg.RedisConfig.TTL))
	}

	// Initialize Kafka producer when brokers are configured
	var publisher application.EventPublisher
	var kafkaProducer *kafka.Producer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = kafkaProducer
	} else {
		log.Warn("no kafka brokers configured, booking events are disabled")
	}

	// Initialize application services
	userService := application.NewUserService(userRepo, log)
	itemService := application.NewItemService(itemRepo, userRepo, requestRepo, bookingRepo, commentRepo, viewCache, log)
	bookingService := application.NewBookingService(bookingRepo, userRepo, itemRepo, itemService, publisher, log)
	requestService := application.NewRequestService(requestRepo, userRepo, itemRepo, log)

	// Start the booking event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if kafkaProducer != nil {
		groupID := cfg.KafkaConfig.GroupPrefix + "item-views"
		bookingConsumer := bookingEvents.NewBookingEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			itemService,
			log,
		)
		defer func() { _ = bookingConsumer.Close() }()

		go func() {
			log.Info("starting booking event consumer")
			if err := bookingConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("booking event consumer error", zap.Error(err))
			}
		}()
	}

	// Initialize HTTP handlers
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	requestHandler := handler.NewRequestHandler(requestService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(serviceName, checkers)
	healthHandler.RegisterRoutes(router)

	// Register routes
	userHandler.RegisterRoutes(&router.RouterGroup)
	itemHandler.RegisterRoutes(&router.RouterGroup)
	bookingHandler.RegisterRoutes(&router.RouterGroup)
	requestHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
