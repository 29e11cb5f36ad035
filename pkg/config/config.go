package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Forecasting ForecastingConfig
	Engine      EngineConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ForecastingConfig holds the forecasting service configuration
type ForecastingConfig struct {
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// EngineConfig holds the rate resolution engine parameters. The defaults match
// the thresholds the historical data was calibrated against; treat changes as
// behaviour changes, not tuning.
type EngineConfig struct {
	MinSampleSize    int
	TrendNoiseFloor  float64
	RateTolerancePct float64
	LookbackMonths   int
	CacheTTLSeconds  int
	DefaultResultCap int
	TrendResultCap   int
	RankingResultCap int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "staffing_rates"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Forecasting: ForecastingConfig{
			BaseURL:        getEnv("FORECAST_BASE_URL", "http://localhost:8002"),
			Model:          getEnv("FORECAST_MODEL", "prophet"),
			TimeoutSeconds: getEnvAsInt("FORECAST_TIMEOUT_SECONDS", 90),
		},
		Engine: EngineConfig{
			MinSampleSize:    getEnvAsInt("ENGINE_MIN_SAMPLE_SIZE", 5),
			TrendNoiseFloor:  getEnvAsFloat("ENGINE_TREND_NOISE_FLOOR", 1.0),
			RateTolerancePct: getEnvAsFloat("ENGINE_RATE_TOLERANCE_PCT", 10.0),
			LookbackMonths:   getEnvAsInt("ENGINE_LOOKBACK_MONTHS", 3),
			CacheTTLSeconds:  getEnvAsInt("ENGINE_CACHE_TTL_SECONDS", 300),
			DefaultResultCap: getEnvAsInt("ENGINE_DEFAULT_RESULT_CAP", 20),
			TrendResultCap:   getEnvAsInt("ENGINE_TREND_RESULT_CAP", 5),
			RankingResultCap: getEnvAsInt("ENGINE_RANKING_RESULT_CAP", 15),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "staffing-rates"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
