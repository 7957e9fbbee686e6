package config

import (
	"os"
	"strconv"

	"pbihub/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Quiz      QuizConfig
	Data      DataConfig
	Learner   LearnerConfig
	Profiling ProfilingConfig
}

// DatabaseConfig holds the record store connection settings
type DatabaseConfig struct {
	Driver string
	URL    string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// QuizConfig holds quiz presentation and scoring settings
type QuizConfig struct {
	PassThreshold float64
	Size          int
	BankFile      string
}

// DataConfig holds sample dataset settings
type DataConfig struct {
	Seed      int64
	ExcelFile string
}

// LearnerConfig holds defaults for new learner sessions
type LearnerConfig struct {
	DefaultUsername string
	DefaultAccent   string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database:  *loadDatabaseConfig(),
		Server:    *loadServerConfig(),
		Quiz:      *loadQuizConfig(),
		Data:      *loadDataConfig(),
		Learner:   *loadLearnerConfig(),
		Profiling: *loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Driver: getEnvOrDefault("DB_DRIVER", "sqlite3"),
		URL:    getEnvOrDefault("DATABASE_URL", "file:pbihub.db?_foreign_keys=on"),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadQuizConfig() *QuizConfig {
	return &QuizConfig{
		PassThreshold: getEnvFloatOrDefault("QUIZ_PASS_THRESHOLD", 0.8),
		Size:          getEnvIntOrDefault("QUIZ_SIZE", 10),
		BankFile:      getEnvOrDefault("QUIZ_BANK_FILE", ""),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		Seed:      getEnvInt64OrDefault("DATASET_SEED", 42),
		ExcelFile: getEnvOrDefault("EXCEL_FILE", ""),
	}
}

func loadLearnerConfig() *LearnerConfig {
	return &LearnerConfig{
		DefaultUsername: getEnvOrDefault("USERNAME", "Learner"),
		DefaultAccent:   getEnvOrDefault("ACCENT", "Aurora"),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return errors.ConfigInvalid("DB_DRIVER must be sqlite3 or postgres")
	}
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Quiz.PassThreshold < 0 || config.Quiz.PassThreshold > 1 {
		return errors.ConfigInvalid("QUIZ_PASS_THRESHOLD must be a fraction between 0 and 1")
	}
	if config.Quiz.Size < 0 {
		return errors.ConfigInvalid("QUIZ_SIZE must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
