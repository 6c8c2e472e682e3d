package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	StationAPI StationAPIConfig
	Mock       MockConfig
	Reporting  ReportingConfig
	MongoDB    MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	DefaultOperator string
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// StationAPIConfig contains connection settings for the remote station API.
type StationAPIConfig struct {
	BaseURL       string
	Token         string
	HealthTimeout time.Duration
	Timeout       time.Duration
}

// MockConfig controls the offline dataset.
type MockConfig struct {
	DatasetPath string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// MongoDBConfig holds settings for MongoDB. An empty URI disables persistence.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	healthTimeout, err := getenvDuration("STATION_API_HEALTH_TIMEOUT", 2*time.Second)
	if err != nil {
		return nil, err
	}
	timeout, err := getenvDuration("STATION_API_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getenvWithDefault("APP_PORT", "8080"),
			AllowedOrigins:  splitList(getenvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
			DefaultOperator: getenvWithDefault("DEFAULT_OPERATOR", "operator"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		StationAPI: StationAPIConfig{
			BaseURL:       os.Getenv("STATION_API_BASE_URL"),
			Token:         os.Getenv("STATION_API_TOKEN"),
			HealthTimeout: healthTimeout,
			Timeout:       timeout,
		},
		Mock: MockConfig{
			DatasetPath: os.Getenv("MOCK_DATASET_PATH"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 * * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "fuelshare"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.StationAPI.BaseURL == "" {
		return errors.New("STATION_API_BASE_URL must be provided")
	}

	switch {
	case c.StationAPI.HealthTimeout <= 0:
		return errors.New("STATION_API_HEALTH_TIMEOUT must be positive")
	case c.StationAPI.HealthTimeout > 5*time.Second:
		return errors.New("STATION_API_HEALTH_TIMEOUT must not exceed 5s")
	case c.StationAPI.Timeout <= 0:
		return errors.New("STATION_API_TIMEOUT must be positive")
	case c.StationAPI.Timeout > 30*time.Second:
		return errors.New("STATION_API_TIMEOUT must not exceed 30s")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a duration: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
