package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	Postgres        PostgresConfig
	Redis           RedisConfig
	Kafka           KafkaConfig
}

// PostgresConfig holds the database connection settings. An empty URL selects
// the in-memory stores.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds the cache connection settings. An empty URL disables the
// published questionnaire cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig holds the audit event broker settings. Empty seeds keep audit
// events on the local store only.
type KafkaConfig struct {
	Seeds []string
	Topic string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            envOr("AGRISURVEY_ADDR", ":8080"),
		ShutdownTimeout: envDuration("AGRISURVEY_SHUTDOWN_TIMEOUT", 10*time.Second),
		Postgres: PostgresConfig{
			URL:          os.Getenv("AGRISURVEY_POSTGRES_URL"),
			MaxOpenConns: envInt("AGRISURVEY_POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("AGRISURVEY_POSTGRES_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("AGRISURVEY_REDIS_URL"),
			PoolSize:     envInt("AGRISURVEY_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("AGRISURVEY_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("AGRISURVEY_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("AGRISURVEY_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("AGRISURVEY_REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     envDuration("AGRISURVEY_REDIS_CACHE_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Seeds: envList("AGRISURVEY_KAFKA_SEEDS"),
			Topic: envOr("AGRISURVEY_KAFKA_AUDIT_TOPIC", "agrisurvey.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
