package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the console server configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	AdminAPI AdminAPIConfig
	Session  SessionConfig
	Redis    RedisConfig
}

// AppConfig contains application-wide settings
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Port string
}

// AdminAPIConfig contains settings for the external admin REST API
type AdminAPIConfig struct {
	BaseURL string
	Timeout time.Duration
	JWKSURL string
}

// SessionConfig contains session and route guard settings
type SessionConfig struct {
	Store         string
	TTL           time.Duration
	CookieSecure  bool
	SweepInterval time.Duration
	RequiredRoles []string
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SeedConfig holds the category seeder configuration
type SeedConfig struct {
	Environment string
	StoreURL    string
	Minio       MinioConfig
}

// MinioConfig contains object storage settings for seed reports
type MinioConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	ReportBucket string
}

// Enabled reports whether seed reports should be archived
func (m MinioConfig) Enabled() bool {
	return m.Endpoint != "" && m.ReportBucket != ""
}

// IsProduction reports whether the app runs with production settings
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production")
}

// Load reads the console configuration from the environment (and .env when present)
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	apiTimeout, err := getEnvDuration("ADMIN_API_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getEnvDuration("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Marketplace Admin"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8081"),
		},
		AdminAPI: AdminAPIConfig{
			BaseURL: strings.TrimRight(getEnv("ADMIN_API_BASE_URL", ""), "/"),
			Timeout: apiTimeout,
			JWKSURL: getEnv("ADMIN_JWKS_URL", ""),
		},
		Session: SessionConfig{
			Store:         strings.ToLower(getEnv("SESSION_STORE", "memory")),
			TTL:           sessionTTL,
			CookieSecure:  getEnv("SESSION_COOKIE_SECURE", "false") == "true",
			SweepInterval: sweepInterval,
			RequiredRoles: splitList(getEnv("ADMIN_REQUIRED_ROLES", "admin")),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}

	if cfg.AdminAPI.BaseURL == "" {
		return nil, errors.New("missing admin api base url (ADMIN_API_BASE_URL)")
	}

	if cfg.Session.Store != "memory" && cfg.Session.Store != "redis" {
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}

	return cfg, nil
}

// LoadSeed reads the seeder configuration from the environment (and .env when present)
func LoadSeed() (*SeedConfig, error) {
	_ = godotenv.Load()

	cfg := &SeedConfig{
		Environment: getEnv("APP_ENV", "development"),
		StoreURL:    getEnv("CATEGORY_STORE_URL", os.Getenv("MONGO_URI")),
		Minio: MinioConfig{
			Endpoint:     getEnv("MINIO_ENDPOINT", ""),
			AccessKey:    getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:    getEnv("MINIO_SECRET_KEY", ""),
			UseSSL:       getEnv("MINIO_USE_SSL", "false") == "true",
			ReportBucket: getEnv("SEED_REPORT_BUCKET", ""),
		},
	}

	if cfg.StoreURL == "" {
		return nil, errors.New("missing category store url (CATEGORY_STORE_URL or MONGO_URI)")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
