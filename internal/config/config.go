package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/database"
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

const defaultJWTSecret = "mexitoes-dev-secret"

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Environment string   `json:"environment"`
	Port        int      `json:"port"`
	Host        string   `json:"host"`
	CORSOrigins []string `json:"cors_origins"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBPath     string `json:"db_path"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`
	// DBConnectAttempts bounds the startup connection retries
	DBConnectAttempts int `json:"db_connect_attempts"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret     string        `json:"jwt_secret"`
	SessionTTL    time.Duration `json:"session_ttl"`
	AdminTokenTTL time.Duration `json:"admin_token_ttl"`

	// OTP delivery
	OTPTTL    time.Duration `json:"otp_ttl"`
	RedisAddr string        `json:"redis_addr"`
	SMSAPIURL string        `json:"sms_api_url"`
	SMSAPIKey string        `json:"sms_api_key"`

	// Order events and progression
	KafkaBrokers         []string      `json:"kafka_brokers"`
	KafkaTopic           string        `json:"kafka_topic"`
	ProgressPollInterval time.Duration `json:"progress_poll_interval"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %d, Host: %s, CORSOrigins: %v, DBDriver: %s, DBPath: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], LogLevel: %s, JWTSecret: [REDACTED], SessionTTL: %s, OTPTTL: %s, RedisAddr: %s, SMSAPIURL: %s, SMSAPIKey: %s, KafkaBrokers: %v, KafkaTopic: %s}",
		c.Environment, c.Port, c.Host, c.CORSOrigins, c.DBDriver, c.DBPath, c.DBHost, c.DBPort, c.DBName, c.DBUser,
		c.LogLevel, c.SessionTTL, c.OTPTTL, c.RedisAddr, c.SMSAPIURL, maskSecret(c.SMSAPIKey), c.KafkaBrokers, c.KafkaTopic)
}

// Database returns the connection settings for the database package
func (c *Config) Database() database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:          c.DBDriver,
		Host:            c.DBHost,
		Port:            c.DBPort,
		User:            c.DBUser,
		Password:        c.DBPassword,
		Name:            c.DBName,
		SSLMode:         c.DBSSLMode,
		Path:            c.DBPath,
		ConnectAttempts: c.DBConnectAttempts,
	}
}

// maskSecret hides a secret while still showing whether it is set
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return "[REDACTED]"
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// It also validates the database driver and the JWT secret
// Returns an error if any required environment variable is missing or invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	environment := GetEnvWithDefault("APP_ENV", "development")

	driver := strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite"))
	switch driver {
	case "sqlite", "postgres", "postgresql", "memory":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, memory)", driver)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		if environment == "production" {
			return nil, errors.New("JWT_SECRET environment variable is required in production")
		}
		log.Warn("JWT_SECRET not set, using development secret")
		jwtSecret = defaultJWTSecret
	}

	config := &Config{
		Environment:          environment,
		Port:                 port,
		Host:                 GetEnvWithDefault("APP_HOST", "localhost"),
		CORSOrigins:          GetEnvAsType("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		DBDriver:             driver,
		DBPath:               GetEnvWithDefault("DB_PATH", "mexitoes.db"),
		DBHost:               GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:               GetEnvWithDefault("DB_PORT", "5432"),
		DBName:               GetEnvWithDefault("DB_NAME", "mexitoes"),
		DBUser:               GetEnvWithDefault("DB_USER", "mexitoes"),
		DBPassword:           GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:            GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBConnectAttempts:    GetEnvAsType("DB_CONNECT_ATTEMPTS", 5),
		LogLevel:             GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:            jwtSecret,
		SessionTTL:           GetEnvAsType("SESSION_TTL", 30*24*time.Hour),
		AdminTokenTTL:        GetEnvAsType("ADMIN_TOKEN_TTL", time.Hour),
		OTPTTL:               GetEnvAsType("OTP_TTL", 5*time.Minute),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		SMSAPIURL:            GetEnvWithDefault("SMS_API_URL", "https://www.fast2sms.com/dev/bulkV2"),
		SMSAPIKey:            os.Getenv("SMS_API_KEY"),
		KafkaBrokers:         GetEnvAsType("KAFKA_BROKERS", []string{}),
		KafkaTopic:           GetEnvWithDefault("KAFKA_TOPIC", "orders.events"),
		ProgressPollInterval: GetEnvAsType("PROGRESS_POLL_INTERVAL", time.Second),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
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
	case time.Duration:
		duration, err := time.ParseDuration(value)
		if err != nil {
			log.Warnf("Environment variable %s has invalid duration %q, using default", key, value)
			return defaultValue
		}
		return any(duration).(T)
	case []string:
		return any(splitCSV(value)).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
