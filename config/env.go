package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	Port            string
	LogLevel        string
	OriginURL       string
	RedisURL        string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CartCacheTTL    time.Duration
	ShutdownTimeout time.Duration

	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CacheEnabled reports whether a Redis endpoint was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" || c.RedisAddr != ""
}

func LoadConfig() *Config {
	loaded := godotenv.Load() == nil

	appEnv := getEnv("APP_ENV", "development")
	defaultLevel := "debug"
	if appEnv == "production" {
		defaultLevel = "info"
	}

	return &Config{
		AppEnv:          appEnv,
		Port:            getEnv("APP_PORT", getEnv("PORT", "3000")),
		LogLevel:        getEnv("LOG_LEVEL", defaultLevel),
		OriginURL:       os.Getenv("ORIGIN_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CartCacheTTL:    getEnvDuration("CART_CACHE_TTL", 5*time.Minute),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		EnvFileLoaded:   loaded,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
