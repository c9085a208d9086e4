package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/martshift/dashboard-service/config"
	"github.com/martshift/dashboard-service/pkg/broker"
	"github.com/martshift/dashboard-service/pkg/cache"
	"github.com/martshift/dashboard-service/pkg/database/postgres"
	"github.com/martshift/dashboard-service/pkg/i18n"
	"github.com/martshift/dashboard-service/pkg/logger"
	"github.com/martshift/dashboard-service/pkg/search"

	annH "github.com/martshift/dashboard-service/internal/announcement/handler"
	annRepoPkg "github.com/martshift/dashboard-service/internal/announcement/repository"

	catH "github.com/martshift/dashboard-service/internal/catalog/handler"
	catRepoPkg "github.com/martshift/dashboard-service/internal/catalog/repository"
	catUCPkg "github.com/martshift/dashboard-service/internal/catalog/usecase"

	ordH "github.com/martshift/dashboard-service/internal/order/handler"
	ordListenerPkg "github.com/martshift/dashboard-service/internal/order/listener"
	ordRepoPkg "github.com/martshift/dashboard-service/internal/order/repository"

	staffH "github.com/martshift/dashboard-service/internal/staff/handler"
	staffRepoPkg "github.com/martshift/dashboard-service/internal/staff/repository"

	dashH "github.com/martshift/dashboard-service/internal/dashboard/handler"
	dashUCPkg "github.com/martshift/dashboard-service/internal/dashboard/usecase"

	"github.com/martshift/dashboard-service/internal/auth"
	"github.com/martshift/dashboard-service/internal/health"
	"github.com/martshift/dashboard-service/internal/metrics"
	appMiddleware "github.com/martshift/dashboard-service/internal/middleware"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 1.5 Initialize i18n (embedded ko/en locales)
	if err := i18n.Init(); err != nil {
		log.Fatalf("failed to load locales: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	ordRepo := ordRepoPkg.NewPGRepository(db)
	staffRepo := staffRepoPkg.NewPGRepository(db)
	annRepo := annRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search falls back to SQL)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize Metrics & UseCases
	m := metrics.New()

	catUC := catUCPkg.NewCatalogUseCase(catRepo, redisClient, esClient, appLogger)
	dashUC := dashUCPkg.NewDashboardUseCase(catRepo, ordRepo, staffRepo, cfg.Dashboard, m, appLogger)

	// 6.5 Initialize Listener
	ordListener := ordListenerPkg.NewOrderListener(kafkaConsumer, ordRepo, catUC, m, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ordListener.Start(ctx)

	// 7. Initialize Handlers
	dashHandler := dashH.NewDashboardHandler(dashUC, appLogger)
	catHandler := catH.NewCatalogHandler(catUC, appLogger)
	ordHandler := ordH.NewOrderHandler(ordRepo, appLogger)
	staffHandler := staffH.NewStaffHandler(staffRepo, appLogger)
	annHandler := annH.NewAnnouncementHandler(annRepo, appLogger)

	healthHandler := health.New(cfg.Server.AppEnv)
	healthHandler.RegisterCheck("postgres", func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	healthHandler.RegisterCheck("redis", redisClient.Health)

	// 8. Router
	r := chi.NewRouter()
	r.Use(appMiddleware.Recovery(appLogger))
	r.Use(appMiddleware.RequestID)
	r.Use(appMiddleware.Logger(appLogger))
	r.Use(appMiddleware.Latency(m))
	r.Use(appMiddleware.Timeout(30 * time.Second))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.JWT.SecretKey))
		dashHandler.Register(r)
		catHandler.Register(r)
		ordHandler.Register(r)
		staffHandler.Register(r)
		annHandler.Register(r)
	})

	// 9. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:              port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
