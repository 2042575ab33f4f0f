package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      *AppConfig      `yaml:"app"`
	Database *DatabaseConfig `yaml:"database"`
	Redis    *RedisConfig    `yaml:"redis"`
	SMTP     *SMTPConfig     `yaml:"smtp"`
	Payment  *PaymentConfig  `yaml:"payment"`
	Maps     *MapsConfig     `yaml:"maps"`
	Storage  *StorageConfig  `yaml:"storage"`
	Security *SecurityConfig `yaml:"security"`
	Admin    *AdminConfig    `yaml:"admin"`
	Order    *OrderConfig    `yaml:"order"`
	Logging  *LoggingConfig  `yaml:"logging"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	Host        string `yaml:"host"`
	BaseURL     string `yaml:"base_url"`
	FrontendURL string `yaml:"frontend_url"`
	Debug       bool   `yaml:"debug"`
	Currency    string `yaml:"currency"`
}

type SecurityConfig struct {
	JWTSecret          string        `yaml:"jwt_secret"`
	JWTAccessTokenTTL  time.Duration `yaml:"jwt_access_token_ttl"`
	JWTRefreshTokenTTL time.Duration `yaml:"jwt_refresh_token_ttl"`
	PasswordMinLength  int           `yaml:"password_min_length"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`
	MaxLoginAttempts   int           `yaml:"max_login_attempts"`
	LoginLockoutTime   time.Duration `yaml:"login_lockout_time"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	TrustedProxies     []string      `yaml:"trusted_proxies"`
}

// AdminConfig holds the single back-office account used for order management.
type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type OrderConfig struct {
	TaxRate     float64 `yaml:"tax_rate"`
	ShippingFee float64 `yaml:"shipping_fee"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Load() (*Config, error) {
	config := &Config{
		App:      loadAppConfig(),
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		SMTP:     loadSMTPConfig(),
		Payment:  loadPaymentConfig(),
		Maps:     loadMapsConfig(),
		Storage:  loadStorageConfig(),
		Security: loadSecurityConfig(),
		Admin:    loadAdminConfig(),
		Order:    loadOrderConfig(),
		Logging:  loadLoggingConfig(),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyFile decodes a YAML file over the env-derived values. Keys missing
// from the file keep their current value.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.App.Port)
	}

	if c.Security.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.App.Environment == "production" && c.Security.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}

	switch c.Storage.Provider {
	case StorageProviderLocal, StorageProviderS3, StorageProviderGCS, StorageProviderCloudinary:
	default:
		return fmt.Errorf("unknown storage provider: %s", c.Storage.Provider)
	}

	if c.Order.TaxRate < 0 || c.Order.ShippingFee < 0 {
		return errors.New("order tax rate and shipping fee must not be negative")
	}

	return nil
}

const defaultJWTSecret = "rentit-dev-secret"

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "RentIt"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("PORT", getEnvAsInt("APP_PORT", 4000)),
		Host:        getEnv("APP_HOST", "localhost"),
		BaseURL:     getEnv("APP_BASE_URL", "http://localhost:4000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		Debug:       getEnvAsBool("APP_DEBUG", true),
		Currency:    getEnv("APP_CURRENCY", "usd"),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		JWTSecret:          getEnv("JWT_SECRET", defaultJWTSecret),
		JWTAccessTokenTTL:  getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),
		JWTRefreshTokenTTL: getEnvAsDuration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		PasswordMinLength:  getEnvAsInt("PASSWORD_MIN_LENGTH", 8),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
		MaxLoginAttempts:   getEnvAsInt("MAX_LOGIN_ATTEMPTS", 5),
		LoginLockoutTime:   getEnvAsDuration("LOGIN_LOCKOUT_TIME", 15*time.Minute),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
	}
}

func loadAdminConfig() *AdminConfig {
	return &AdminConfig{
		Email:    getEnv("ADMIN_EMAIL", ""),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}
}

func loadOrderConfig() *OrderConfig {
	return &OrderConfig{
		TaxRate:     getEnvAsFloat64("ORDER_TAX_RATE", 0.10),
		ShippingFee: getEnvAsFloat64("ORDER_SHIPPING_FEE", 5),
	}
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Format:     getEnv("LOG_FORMAT", "json"),
		Output:     getEnv("LOG_OUTPUT", "stdout"),
		MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
		MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
