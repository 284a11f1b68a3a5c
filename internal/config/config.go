package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

const (
	defaultCatalogURL  = "https://fakestoreapi.com"
	defaultDataDir     = ".shopelite"
	defaultRubPerUSD   = 89
	defaultCatalogRPS  = 5
	defaultCacheSize   = 256
	defaultRedisPrefix = "shopelite:"
)

var (
	ErrMissingDBConfig    = errors.New("postgres backend requires DB_HOST and DB_NAME")
	ErrMissingRedisConfig = errors.New("redis backend requires REDIS_ADDR")
	ErrUnknownBackend     = errors.New("unknown storage backend")
)

type Config struct {
	AppEnv   string
	LogLevel string

	StorageBackend string
	DataDir        string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	CatalogBaseURL   string
	CatalogRateLimit float64
	CatalogCacheSize int
	RubPerUSD        float64

	PasswordHasher  string
	StripeSecretKey string
}

// LoadConfig reads the environment (and a .env file, when present).
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:           os.Getenv("APP_ENV"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		StorageBackend:   getEnv("STORAGE_BACKEND", BackendFile),
		DataDir:          getEnv("DATA_DIR", defaultDataDir),
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBPort:           getEnv("DB_PORT", "5432"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPrefix:      getEnv("REDIS_PREFIX", defaultRedisPrefix),
		CatalogBaseURL:   getEnv("CATALOG_BASE_URL", defaultCatalogURL),
		CatalogRateLimit: getEnvRate("CATALOG_RPS", defaultCatalogRPS),
		CatalogCacheSize: getEnvInt("CATALOG_CACHE_SIZE", defaultCacheSize),
		RubPerUSD:        getEnvFloat("RUB_PER_USD", defaultRubPerUSD),
		PasswordHasher:   os.Getenv("PASSWORD_HASHER"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
	}
}

// Validate checks that the selected storage backend has what it needs.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendFile:
		return nil
	case BackendPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return ErrMissingDBConfig
		}
		return nil
	case BackendRedis:
		if c.RedisAddr == "" {
			return ErrMissingRedisConfig
		}
		return nil
	default:
		return ErrUnknownBackend
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// getEnvRate accepts 0, which turns throttling off. Negative or unparseable
// values fall back.
func getEnvRate(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
