package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flight-quality-analyzer/internal/domain/repository"
	"flight-quality-analyzer/internal/infrastructure/config"
	"flight-quality-analyzer/internal/infrastructure/persistence"
	"flight-quality-analyzer/internal/infrastructure/router"
	"flight-quality-analyzer/internal/interface/api"
	repo "flight-quality-analyzer/internal/interface/repository"
	"flight-quality-analyzer/internal/usecase"
	"flight-quality-analyzer/pkg/logger"
	"flight-quality-analyzer/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	upSince := time.Now()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithOptions(cfg.AppEnv, cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Flight Quality Analyzer", "version", cfg.AppVersion)

	m := metrics.NewMetrics("flight_quality", prometheus.DefaultRegisterer)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Flight record source
	var mongoClient *mongo.Client
	var flightRepo repository.FlightRecordRepository
	switch cfg.FlightSource {
	case config.FlightSourceMongo:
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, persistence.MongoOptions{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDB,
			Username: cfg.MongoUser,
			Password: cfg.MongoPassword,
			Timeout:  cfg.MongoTimeout,
		})
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		flightRepo = repo.NewMongoFlightRecordRepository(db, cfg.MongoCollection, log)
	default:
		flightRepo = repo.NewCSVFlightRecordRepository(cfg.FlightsCSVPath, log)
	}
	log.Info("Flight source configured", "source", cfg.FlightSource)

	// Airport timezone source
	var timezoneRepo repository.TimezoneRepository
	switch cfg.TimezoneSource {
	case config.TimezoneSourcePostgres:
		log.Info("Connecting to PostgreSQL")
		gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		timezoneRepo = repo.NewGormTimezoneRepository(gormDB)
	default:
		timezoneRepo = repo.NewFileTimezoneRepository(cfg.TimezoneMapPath)
	}
	log.Info("Timezone source configured", "source", cfg.TimezoneSource)

	// Use cases
	timezones := usecase.NewTimezoneProvider(timezoneRepo, cfg.TimezoneCacheTTL, log, m)
	loader := usecase.NewFlightLoader(flightRepo, timezones, usecase.BadRecordPolicy(cfg.BadRecordPolicy), log, m)
	service := usecase.NewAnalysisService(loader, usecase.AnalyzerConfig{
		Workers:         cfg.AnalysisWorkers,
		ReportAllBreaks: cfg.ReportAllBreaks,
	}, log, m)

	handler := router.NewRouter(api.NewHandlers(service, log), m, log, router.Options{
		Version:        cfg.AppVersion,
		UpSince:        upSince,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Flight Quality Analyzer stopped")
}
