// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	KVSQLite = "sqlite"
	KVRedis  = "redis"
	KVMemory = "memory"
)

type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBName     string
	DBHost     string
	DBPort     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	LocalDBPath string
	LocalKV     string

	JWTSecret    string
	JWTIssuer    string
	TokenTTL     time.Duration
	DemoPassword string

	Location *time.Location

	KafkaBrokers []string
	KafkaTopic   string

	RateLimit     int
	RateWindow    time.Duration
	SyncQueueSize int
	TickInterval  time.Duration
}

// Load reads a .env file when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		LocalDBPath:   getEnv("LOCAL_DB_PATH", "planner.db"),
		LocalKV:       strings.ToLower(getEnv("LOCAL_KV", KVSQLite)),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:     getEnv("JWT_ISSUER", "kanso-planner"),
		TokenTTL:      getDurationEnv("TOKEN_TTL", 24*time.Hour),
		DemoPassword:  getEnv("DEMO_PASSWORD", "planner2024"),
		KafkaBrokers:  splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "planner.completions"),
		RateLimit:     getIntEnv("RATE_LIMIT", 100),
		RateWindow:    getDurationEnv("RATE_WINDOW", time.Minute),
		SyncQueueSize: getIntEnv("SYNC_QUEUE_SIZE", 256),
		TickInterval:  getDurationEnv("TICK_INTERVAL", time.Minute),
	}

	switch cfg.LocalKV {
	case KVSQLite, KVRedis, KVMemory:
	default:
		return Config{}, fmt.Errorf("config: unknown LOCAL_KV %q (sqlite, redis or memory)", cfg.LocalKV)
	}
	if cfg.LocalKV == KVRedis && !cfg.RedisEnabled() {
		return Config{}, fmt.Errorf("config: LOCAL_KV=redis requires REDIS_HOST")
	}

	loc, err := time.LoadLocation(getEnv("PLANNER_TZ", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid PLANNER_TZ: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

// RemoteEnabled reports whether database credentials for the remote backend are set.
func (c Config) RemoteEnabled() bool {
	return c.DBUser != "" && c.DBName != ""
}

func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
