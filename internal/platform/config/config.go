package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

// Config is the process configuration. FromEnv fills it from the environment.
type Config struct {
	Environment  string
	Server       Server
	Database     DatabaseConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Integrations IntegrationsConfig
	Quote        QuoteConfig
	Sign         SignConfig
}

// Server captures HTTP server level configuration. An empty AdminToken
// closes the operator routes.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AdminToken      string
}

// DatabaseConfig points at Postgres. An empty URL keeps quotes and the
// outbox in memory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig enables the outbox relay when Brokers is set.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	RelayInterval time.Duration
	RelayBatch    int
}

type IntegrationsConfig struct {
	PricingURL     string
	PricingTimeout time.Duration
	MemberURL      string
	MemberTimeout  time.Duration
}

type QuoteConfig struct {
	Validity time.Duration
}

// SignConfig configures signing. CallbackToken is shared with the sign
// provider; empty rejects its callbacks.
type SignConfig struct {
	// SimpleSignEnabled routes non-Swedish bundles to simple sign.
	SimpleSignEnabled bool
	SessionStore      string
	SessionTTL        time.Duration
	CallbackToken     string
}

// IsProduction reports whether the process runs in production.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func FromEnv() Config {
	return Config{
		Environment: getEnv("UNDERWRITER_ENV", "development"),
		Server: Server{
			Addr:            getEnv("UNDERWRITER_ADDR", ":8080"),
			RequestTimeout:  getDuration("REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
			AdminToken:      os.Getenv("ADMIN_API_TOKEN"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:       getList("KAFKA_BROKERS"),
			Topic:         getEnv("KAFKA_TOPIC", "underwriter.events"),
			RelayInterval: getDuration("OUTBOX_RELAY_INTERVAL", time.Second),
			RelayBatch:    getInt("OUTBOX_RELAY_BATCH", 100),
		},
		Integrations: IntegrationsConfig{
			PricingURL:     getEnv("PRICING_URL", "http://localhost:8081"),
			PricingTimeout: getDuration("PRICING_TIMEOUT", 5*time.Second),
			MemberURL:      getEnv("MEMBER_URL", "http://localhost:8082"),
			MemberTimeout:  getDuration("MEMBER_TIMEOUT", 10*time.Second),
		},
		Quote: QuoteConfig{
			Validity: getDuration("QUOTE_VALIDITY", 30*24*time.Hour),
		},
		Sign: SignConfig{
			SimpleSignEnabled: os.Getenv("SIMPLE_SIGN_ENABLED") == "true",
			SessionStore:      getEnv("SIGN_SESSION_STORE", SessionStoreMemory),
			SessionTTL:        getDuration("SIGN_SESSION_TTL", 24*time.Hour),
			CallbackToken:     os.Getenv("SIGN_CALLBACK_TOKEN"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
