package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Payment     PaymentConfig
	Auth        AuthConfig
	HTTP        HTTPConfig
	WhatsApp    WhatsAppConfig
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

// PaymentConfig holds payment provider configuration
type PaymentConfig struct {
	// Provider selects the payment adapter: "paystack" or "mock"
	Provider   string
	PublicKey  string
	SecretKey  string
	BaseURL    string
	ScriptURL  string
	Currency   string
	SessionTTL time.Duration
}

// AuthConfig holds settings for verifying identity provider access tokens
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// HTTPConfig holds HTTP edge settings
type HTTPConfig struct {
	AllowedOrigins     []string
	RateLimitPerMinute int
	RateLimitBurst     int
	// TrustProxyHeaders keys anonymous rate limits on X-Forwarded-For
	TrustProxyHeaders bool
}

// WhatsAppConfig holds booking confirmation messaging settings. Messaging is
// disabled when either value is empty.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
}

// Enabled reports whether confirmations should be sent
func (c *WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != ""
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default reads configuration from environment variables without validation
func Default() *Config {
	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "sportzone"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Payment: PaymentConfig{
			Provider:   getEnv("PAYMENT_PROVIDER", "paystack"),
			PublicKey:  getEnv("PAYSTACK_PUBLIC_KEY", ""),
			SecretKey:  getEnv("PAYSTACK_SECRET_KEY", ""),
			BaseURL:    getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			ScriptURL:  getEnv("PAYSTACK_SCRIPT_URL", "https://js.paystack.co/v1/inline.js"),
			Currency:   getEnv("PAYMENT_CURRENCY", "NGN"),
			SessionTTL: time.Duration(getEnvAsInt("PAYMENT_SESSION_TTL_MINUTES", 30)) * time.Minute,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			Issuer:    getEnv("AUTH_JWT_ISSUER", ""),
		},
		HTTP: HTTPConfig{
			AllowedOrigins:     getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
			TrustProxyHeaders:  getEnvAsBool("TRUST_PROXY_HEADERS", false),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
			PhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "sportzone-api"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}
}

// Validate checks settings the service cannot start without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	switch c.Payment.Provider {
	case "mock":
	case "paystack":
		if c.Payment.PublicKey == "" || c.Payment.SecretKey == "" {
			return fmt.Errorf("PAYSTACK_PUBLIC_KEY and PAYSTACK_SECRET_KEY are required for the paystack provider")
		}
	default:
		return fmt.Errorf("unsupported PAYMENT_PROVIDER %q", c.Payment.Provider)
	}
	if c.Payment.SessionTTL <= 0 {
		return fmt.Errorf("PAYMENT_SESSION_TTL_MINUTES must be positive")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
