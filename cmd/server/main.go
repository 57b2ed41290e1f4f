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
	"go.uber.org/zap"

	"github.com/suitespot/service-booking/internal/application"
	"github.com/suitespot/service-booking/internal/config"
	bookingDomain "github.com/suitespot/service-booking/internal/domain/booking"
	bookingEvents "github.com/suitespot/service-booking/internal/events"
	"github.com/suitespot/service-booking/internal/handler"
	"github.com/suitespot/service-booking/internal/pkg/auth"
	"github.com/suitespot/service-booking/internal/pkg/cache"
	"github.com/suitespot/service-booking/internal/pkg/database"
	"github.com/suitespot/service-booking/internal/pkg/health"
	"github.com/suitespot/service-booking/internal/pkg/kafka"
	"github.com/suitespot/service-booking/internal/pkg/logger"
	"github.com/suitespot/service-booking/internal/pkg/middleware"
	"github.com/suitespot/service-booking/internal/repository"
)

const serviceName = "service-booking"

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
	zap.ReplaceGlobals(log)

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	dbURL := cfg.DBConfig.URL()
	db, err := database.Connect(dbURL, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" || !database.IsPostgres(dbURL) {
		if err := repository.AutoMigrate(db); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(dbURL, cfg.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.TTL)

	// Initialize Kafka producer
	var publisher application.EventPublisher = application.NoopPublisher{}
	if cfg.KafkaConfig.Enabled() {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = kafkaProducer
	} else {
		log.Warn("no kafka brokers configured, events will not be published")
	}

	// Initialize featured rooms cache
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var roomCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, serviceName+":")
		if err != nil {
			log.Warn("redis unavailable, featured rooms will not be cached", zap.Error(err))
		} else {
			defer func() { _ = redisCache.Close() }()
			roomCache = redisCache
		}
	}

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	transactor := repository.NewGormTransactor(db)

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		roomRepo,
		bookingDomain.NewStandardPricingStrategy(),
		transactor,
		publisher,
		log,
	)
	roomService := application.NewRoomService(roomRepo, bookingRepo, roomCache, cfg.FeaturedCacheTTL, log)
	reviewService := application.NewReviewService(reviewRepo, roomRepo, transactor, publisher, log)

	// Initialize and start room catalog consumer in a goroutine
	if cfg.KafkaConfig.Enabled() {
		groupID := cfg.KafkaConfig.GroupPrefix + "booking-service"
		catalogConsumer := bookingEvents.NewRoomCatalogConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			roomService,
			log,
		)
		defer func() { _ = catalogConsumer.Close() }()

		go func() {
			log.Info("starting room catalog consumer")
			if err := catalogConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("room catalog consumer error", zap.Error(err))
			}
		}()
	}

	// Setup Gin router
	if cfg.AppEnv == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register routes
	handler.NewSessionHandler(jwtManager, cfg.IsProduction()).RegisterRoutes(&router.RouterGroup)
	handler.NewRoomHandler(roomService).RegisterRoutes(&router.RouterGroup)
	handler.NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewReviewHandler(reviewService).RegisterRoutes(&router.RouterGroup, jwtManager)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
