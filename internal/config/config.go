package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Env  string
	Port int

	// relational store
	DBDriver      string
	DBURL         string
	DBAutoMigrate bool

	// sessions
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionSecret string
	SessionTTL    time.Duration

	// content + uploads
	DataFile       string
	StaticDir      string
	MaxUploadBytes int64

	LoginRateLimit  int
	LoginRateWindow time.Duration

	// origins allowed to read /api/content
	CORSAllowedOrigins []string

	// behind a TLS-terminating proxy, take the scheme from X-Forwarded-Proto
	TrustForwardedProto bool

	// tracing
	OtelEnabled     bool
	OtelEndpoint    string
	OtelSampleRatio float64

	// used by the memory driver seed and by cmd/createadmin
	AdminUser     string
	AdminPassword string
}

func Load() Config {
	// a missing .env is fine, the real environment still applies
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = buildDBURL()
	}

	return Config{
		Env:  env,
		Port: getEnvInt("PORT", 8080),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBURL:         dbURL,
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-key"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),

		DataFile:       getEnv("DATA_FILE", "data/resume_data.json"),
		StaticDir:      getEnv("STATIC_DIR", "static"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 16<<20)),

		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),

		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS"),
		TrustForwardedProto: getEnvBool("TRUST_FORWARDED_PROTO", false),

		OtelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OtelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OtelSampleRatio: getEnvFloat("OTEL_SAMPLE_RATIO", 1),

		AdminUser:     os.Getenv("ADMIN_USER"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "portfolio")
	pass := getEnv("DB_PASSWORD", "portfolio")
	name := getEnv("DB_NAME", "portfolio")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

// IsProd reports whether cookies should be marked Secure.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)

		if err != nil {
			slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
			return fallback
		}

		return b
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)

		if err != nil {
			slog.Warn("invalid number in environment, using default", "key", key, "value", v)
			return fallback
		}

		return f
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil || d <= 0 {
			slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
			return fallback
		}

		return d
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string) []string {
	var out []string

	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
