// internal/infrastructure/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported flight record sources
const (
	FlightSourceCSV   = "csv"
	FlightSourceMongo = "mongo"
)

// Supported timezone map sources
const (
	TimezoneSourceFile     = "file"
	TimezoneSourcePostgres = "postgres"
)

// ErrUnsupportedSource is returned for source or policy names the service does not know
var ErrUnsupportedSource = errors.New("unsupported source")

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	AppEnv     string
	LogLevel   string

	// Server
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RateLimitRPS   int
	RateLimitBurst int

	// Flight records
	FlightSource    string
	FlightsCSVPath  string
	BadRecordPolicy string

	// MongoDB
	MongoURI        string
	MongoDB         string
	MongoUser       string
	MongoPassword   string
	MongoCollection string
	MongoTimeout    time.Duration

	// Timezones
	TimezoneSource   string
	TimezoneMapPath  string
	PostgresURI      string
	TimezoneCacheTTL time.Duration

	// Analysis
	AnalysisWorkers int
	ReportAllBreaks bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:           getEnv("PORT", "8080"),
		ReadTimeout:    time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:   time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		RateLimitRPS:   getEnvAsInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),

		FlightSource:    strings.ToLower(getEnv("FLIGHT_SOURCE", FlightSourceCSV)),
		FlightsCSVPath:  getEnv("FLIGHTS_CSV_PATH", "data/flights.csv"),
		BadRecordPolicy: strings.ToLower(getEnv("BAD_RECORD_POLICY", "skip")),

		MongoURI:        getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "flight_quality"),
		MongoUser:       getEnv("MONGO_USER", ""),
		MongoPassword:   getEnv("MONGO_PASSWORD", ""),
		MongoCollection: getEnv("MONGO_COLLECTION", "flight_movements"),
		MongoTimeout:    time.Duration(getEnvAsInt("MONGO_TIMEOUT", 10)) * time.Second,

		TimezoneSource:   strings.ToLower(getEnv("TIMEZONE_SOURCE", TimezoneSourceFile)),
		TimezoneMapPath:  getEnv("TIMEZONE_MAP_PATH", "data/airport_timezones.txt"),
		PostgresURI:      getEnv("POSTGRES_DSN", ""),
		TimezoneCacheTTL: time.Duration(getEnvAsInt("TIMEZONE_CACHE_TTL", 900)) * time.Second,

		AnalysisWorkers: getEnvAsInt("ANALYSIS_WORKERS", 4),
		ReportAllBreaks: getEnvAsBool("REPORT_ALL_BREAKS", false),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects source and policy names the service does not know about
func (c *Config) Validate() error {
	switch c.FlightSource {
	case FlightSourceCSV, FlightSourceMongo:
	default:
		return fmt.Errorf("%w: FLIGHT_SOURCE=%q", ErrUnsupportedSource, c.FlightSource)
	}

	switch c.TimezoneSource {
	case TimezoneSourceFile:
	case TimezoneSourcePostgres:
		if c.PostgresURI == "" {
			return fmt.Errorf("TIMEZONE_SOURCE=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("%w: TIMEZONE_SOURCE=%q", ErrUnsupportedSource, c.TimezoneSource)
	}

	switch c.BadRecordPolicy {
	case "skip", "abort":
	default:
		return fmt.Errorf("%w: BAD_RECORD_POLICY=%q", ErrUnsupportedSource, c.BadRecordPolicy)
	}

	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
