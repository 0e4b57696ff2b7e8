package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      *AppConfig      `yaml:"app"`
	Redis    *RedisConfig    `yaml:"redis"`
	Maps     *MapsConfig     `yaml:"maps"`
	Events   *EventsConfig   `yaml:"events"`
	Payment  *PaymentConfig  `yaml:"payment"`
	Identity *IdentityConfig `yaml:"identity"`
	OAuth    *OAuthConfig    `yaml:"oauth"`
	Storage  *StorageConfig  `yaml:"storage"`
	Security *SecurityConfig `yaml:"security"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	Host        string `yaml:"host"`
	BaseURL     string `yaml:"base_url"`
	Debug       bool   `yaml:"debug"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	Timezone    string `yaml:"timezone"`
	Currency    string `yaml:"currency"`
	CountryCode string `yaml:"country_code"`
}

type SecurityConfig struct {
	JWTSecret          string        `yaml:"jwt_secret"`
	JWTAccessTokenTTL  time.Duration `yaml:"jwt_access_token_ttl"`
	JWTRefreshTokenTTL time.Duration `yaml:"jwt_refresh_token_ttl"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
}

func Load() (*Config, error) {
	config := &Config{
		App:      loadAppConfig(),
		Redis:    loadRedisConfig(),
		Maps:     loadMapsConfig(),
		Events:   loadEventsConfig(),
		Payment:  loadPaymentConfig(),
		Identity: loadIdentityConfig(),
		OAuth:    loadOAuthConfig(),
		Storage:  loadStorageConfig(),
		Security: loadSecurityConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "JamRide"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("APP_PORT", 8080),
		Host:        getEnv("APP_HOST", "localhost"),
		BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		Debug:       getEnvAsBool("APP_DEBUG", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Timezone:    getEnv("APP_TIMEZONE", "Europe/Rome"),
		Currency:    getEnv("APP_CURRENCY", "EUR"),
		CountryCode: getEnv("APP_COUNTRY_CODE", "IT"),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		JWTSecret:          getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
		JWTAccessTokenTTL:  getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),
		JWTRefreshTokenTTL: getEnvAsDuration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
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
		return strings.Split(value, ",")
	}
	return defaultValue
}

func IsProduction() bool {
	return getEnv("APP_ENV", "development") == "production"
}

func IsDevelopment() bool {
	return getEnv("APP_ENV", "development") == "development"
}
