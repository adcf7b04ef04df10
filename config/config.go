package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"hotelbooking/constants"
)

// Config is the process configuration read from .env and the environment.
type Config struct {
	Env      string
	Port     string
	LogLevel string
	LogDir   string

	DatabaseDSN string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	RabbitMQURL string
	JWTSecret   string

	CacheTTLRoom         time.Duration
	CacheTTLSearch       time.Duration
	CacheTTLAvailability time.Duration

	NotifyWorkers   int
	NotifyQueueSize int

	PendingExpiryCron string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not loaded, using process environment: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: %s=%q is not a positive integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// getDuration accepts a Go duration ("90s") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	log.Printf("Warning: %s=%q is not a duration, using %s", key, v, fallback)
	return fallback
}

// Load reads the configuration. The database DSN is empty when ENV is unset,
// which runs the service on in-memory stores.
func Load() *Config {
	LoadEnv()

	env := GetEnv("ENV")
	cfg := &Config{
		Env:      env,
		Port:     getEnvDefault("PORT", "8083"),
		LogLevel: getEnvDefault("LOG_LEVEL", "info"),
		LogDir:   GetEnv("LOG_DIR"),

		RedisAddr:     GetEnv("REDIS_ADDR"),
		RedisUser:     GetEnv("REDIS_USER"),
		RedisPassword: GetEnv("REDIS_PASSWORD"),

		RabbitMQURL: GetEnv("RABBITMQ_URL"),
		JWTSecret:   GetEnv("JWT_SECRET"),

		CacheTTLRoom:         getDuration("CACHE_TTL_ROOM", constants.DefaultRoomTTL),
		CacheTTLSearch:       getDuration("CACHE_TTL_SEARCH", constants.DefaultSearchTTL),
		CacheTTLAvailability: getDuration("CACHE_TTL_AVAILABILITY", constants.DefaultAvailabilityTTL),

		NotifyWorkers:   getInt("NOTIFY_WORKERS", 2),
		NotifyQueueSize: getInt("NOTIFY_QUEUE_SIZE", 256),

		PendingExpiryCron: getEnvDefault("PENDING_EXPIRY_CRON", "0 0 * * *"),
	}
	if env != "" {
		cfg.DatabaseDSN = getDBConfigByEnv(env)
	}
	return cfg
}
