package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
)

// Store drivers
const (
	DriverCSV      = "csv"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Insight scopes
const (
	InsightScopeContext = "context"
	InsightScopeGlobal  = "global"
)

type Config struct {
	TelegramToken  string
	AllowedChatID  int64
	GeminiAPIKey   string
	GeminiModel    string
	ThresholdsPath string
	InsightScope   string
	Store          StoreConfig
	DB             DBConfig
	Redis          RedisConfig
	Logger         LoggerConfig
}

type StoreConfig struct {
	Driver     string
	CSVPath    string
	SQLitePath string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the postgres connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Enabled bool
	Host    string
	Port    string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		ThresholdsPath: os.Getenv("THRESHOLDS_PATH"),
		InsightScope:   strings.ToLower(getEnvOrDefault("INSIGHT_SCOPE", InsightScopeContext)),
		Store: StoreConfig{
			Driver:     strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverCSV)),
			CSVPath:    getEnvOrDefault("CSV_PATH", "sugar_history.csv"),
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "sugar_history.db"),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "sugar_guidance"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host: getEnvOrDefault("REDIS_HOST", "localhost"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	if v := os.Getenv("TELEGRAM_ALLOWED_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ALLOWED_CHAT_ID must be an integer: %w", err)
		}
		cfg.AllowedChatID = id
	}

	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_ENABLED must be a boolean: %w", err)
		}
		cfg.Redis.Enabled = enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have a fixed set of values
func (c *Config) Validate() error {
	var problems []string

	switch c.Store.Driver {
	case DriverCSV:
		if c.Store.CSVPath == "" {
			problems = append(problems, "CSV_PATH must not be empty")
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH must not be empty")
		}
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.DBName == "" {
			problems = append(problems, "DB_HOST and DB_NAME are required for the postgres store")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER %q is not one of csv, sqlite, postgres", c.Store.Driver))
	}

	switch c.InsightScope {
	case InsightScopeContext, InsightScopeGlobal:
	default:
		problems = append(problems, fmt.Sprintf("INSIGHT_SCOPE %q is not one of context, global", c.InsightScope))
	}

	if c.Logger.Format != "json" && c.Logger.Format != "text" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT %q is not one of json, text", c.Logger.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// RequireBot checks the settings needed to run the Telegram bot
func (c *Config) RequireBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required to run the bot")
	}
	return nil
}
