package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tupyme/config"
	"tupyme/internal/backend"
	"tupyme/internal/cache"
	"tupyme/internal/handler"
	"tupyme/internal/payment"
	"tupyme/internal/prefs"
	"tupyme/internal/repository"
	"tupyme/internal/state"
	"tupyme/traits/database"
	"tupyme/traits/logger"

	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	zapLogger, err := logger.NewLoggerWithLevel(cfg.LogLevel, cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()

	// Validate configuration
	if err := cfg.ValidateConfig(); err != nil {
		zapLogger.Error("invalid configuration", zap.Error(err))
		return
	}

	zapLogger.Info("Starting TuPyme application",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("backend_url", cfg.BackendBaseURL),
	)

	// Initialize database
	db, err := database.InitDatabase(cfg, zapLogger)
	if err != nil {
		zapLogger.Error("failed to initialize database", zap.Error(err))
		return
	}
	defer db.Close()

	// Create database tables
	if err := database.CreateTables(db, zapLogger); err != nil {
		zapLogger.Error("failed to create tables", zap.Error(err))
		return
	}

	// Initialize redis cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	indicatorCache := cache.NewRedisCache(redisClient, cfg.IndicatorCacheTTL)

	// Initialize outbound API clients
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	apiClient := backend.NewClient(cfg.BackendBaseURL, httpClient, zapLogger)
	indicatorsClient := backend.NewIndicatorsClient(cfg.IndicatorsBaseURL, httpClient, zapLogger)
	geocoderClient := backend.NewGeocoderClient(cfg.GeocoderBaseURL, httpClient, zapLogger)

	// Initialize repositories
	prefsStore := prefs.NewStore(db, zapLogger)
	userRepo := repository.NewUserRepository(apiClient, prefsStore, zapLogger)
	companyRepo := repository.NewCompanyRepository(apiClient, zapLogger)
	planRepo := repository.NewPlanRepository(apiClient, zapLogger)
	ticketRepo := repository.NewTicketRepository(apiClient, zapLogger)
	indicatorRepo := repository.NewIndicatorRepository(indicatorsClient, indicatorCache, zapLogger)
	geocodeRepo := repository.NewGeocodeRepository(geocoderClient, zapLogger)
	orderRepo := repository.NewOrderRepository(db, zapLogger)

	// Session state manager
	sessions := state.NewManager(userRepo, ticketRepo)

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create handler with repositories
	handl := handler.NewHandler(cfg, zapLogger, handler.Repositories{
		Users:      userRepo,
		Companies:  companyRepo,
		Plans:      planRepo,
		Tickets:    ticketRepo,
		Indicators: indicatorRepo,
		Geocoder:   geocodeRepo,
		Orders:     orderRepo,
	}, sessions, prefsStore)

	// Payment processor settles processing orders and pushes the final
	// status to websocket watchers
	processor := payment.NewProcessor(orderRepo, cfg.PaymentSettleDelay, cfg.PaymentPollPeriod, zapLogger, handl.NotifyOrderPaid)
	go processor.Run(ctx)

	// Set up graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-stop
		zapLogger.Info("Shutdown signal received")
		cancel()
	}()

	// Start web server (blocks until shutdown)
	zapLogger.Info("Web server starting", zap.String("address", cfg.GetServerAddress()))
	handl.StartWebServer(ctx)

	zapLogger.Info("Application stopped successfully")
}
