package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// ErrMissingAPIKey is returned by Load when no Gemini credential is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY (or API_KEY) must be set")

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Gemini     GeminiConfig
	Generation GenerationConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	// DSN overrides the individual connection fields when set.
	DSN string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

type GenerationConfig struct {
	MaxConcurrent     int
	Parallel          bool
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

type StorageConfig struct {
	Driver      string
	UploadPath  string
	MaxFileSize int64
	S3Bucket    string
	S3Region    string
	S3Prefix    string
	S3Endpoint  string
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Using environment and default values.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "9085"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", ""),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_reviewer"),
			DSN:      getEnv("DB_DSN", ""),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: float32(getEnvAsFloat("GEMINI_TEMPERATURE", 0.7)),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", "60s"),
		},
		Generation: GenerationConfig{
			MaxConcurrent:     getEnvAsInt("GENERATION_MAX_CONCURRENT", 4),
			Parallel:          getEnvAsBool("GENERATION_PARALLEL", true),
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3Region:    getEnv("S3_REGION", ""),
			S3Prefix:    getEnv("S3_PREFIX", "resumes"),
			S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
			TTL: getEnvAsDuration("REDIS_TTL", "1h"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "pretty"),
		},
	}

	if cfg.Gemini.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if cfg.Database.Port == "" {
		cfg.Database.Port = defaultDatabasePort(cfg.Database.Driver)
	}

	return cfg, nil
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}

	switch c.Database.Driver {
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.DBName,
		)
	default:
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Database.Host,
			c.Database.Port,
			c.Database.User,
			c.Database.Password,
			c.Database.DBName,
		)
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func defaultDatabasePort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
