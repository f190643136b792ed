package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// DefaultImageGenDailyLimit is the free-tier ceiling used when neither the
// server-side nor the public environment variable is set.
const DefaultImageGenDailyLimit = 35

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_ssl_mode"`
	DBPath     string `json:"db_path"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret string `json:"jwt_secret"`

	// Public site base URL used for auth redirects, QR deep links and
	// checkout return URLs. When empty, handlers fall back to the
	// proxy-forwarded host, then the request origin.
	SiteURL string `json:"site_url"`

	// Billing provider configuration
	StripeAPIKey        string `json:"stripe_api_key"`
	StripeWebhookSecret string `json:"stripe_webhook_secret"`

	// Daily free-tier ceiling for AI image generation
	ImageGenDailyLimit int `json:"image_gen_daily_limit"`

	// CORS configuration, comma-separated origins
	CORSOrigins string `json:"cors_origins"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], LogLevel: %s, JWTSecret: [REDACTED], SiteURL: %s, StripeAPIKey: [REDACTED], StripeWebhookSecret: [REDACTED], ImageGenDailyLimit: %d}",
		c.Port, c.Host, c.DBDriver, c.DBHost, c.DBName, c.DBUser, c.LogLevel, c.SiteURL, c.ImageGenDailyLimit)
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// It validates the site URL format and rejects obviously unusable values.
// Returns an error if any required environment variable is missing or invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	siteURL := GetEnvWithDefault("SITE_URL", "")
	if siteURL != "" {
		// validate URL with net/url
		if _, err := url.ParseRequestURI(siteURL); err != nil {
			return nil, errors.New("invalid SITE_URL format: " + siteURL)
		}
	}

	config := &Config{
		Port:                port,
		Host:                GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:            GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBHost:              GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:              GetEnvWithDefault("DB_PORT", "5432"),
		DBName:              GetEnvWithDefault("DB_NAME", "menulink"),
		DBUser:              GetEnvWithDefault("DB_USER", "user"),
		DBPassword:          GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:           GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:              GetEnvWithDefault("DB_PATH", "menulink.sqlite"),
		LogLevel:            GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:           GetEnvWithDefault("JWT_SECRET", "secret"),
		SiteURL:             siteURL,
		StripeAPIKey:        GetEnvWithDefault("STRIPE_API_KEY", ""),
		StripeWebhookSecret: GetEnvWithDefault("STRIPE_WEBHOOK_SECRET", ""),
		ImageGenDailyLimit:  imageGenDailyLimit(),
		CORSOrigins:         GetEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// imageGenDailyLimit resolves the daily image-generation ceiling with a
// documented precedence: server variable, then the public (frontend-visible)
// variable, then the built-in default.
func imageGenDailyLimit() int {
	if v := os.Getenv("IMAGE_GEN_DAILY_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			return limit
		}
		log.Warnf("IMAGE_GEN_DAILY_LIMIT is not a number: %s", v)
	}
	if v := os.Getenv("PUBLIC_IMAGE_GEN_DAILY_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			return limit
		}
		log.Warnf("PUBLIC_IMAGE_GEN_DAILY_LIMIT is not a number: %s", v)
	}
	return DefaultImageGenDailyLimit
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
