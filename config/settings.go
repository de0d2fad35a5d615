package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Settings is the process configuration read from the environment.
type Settings struct {
	Port               string `validate:"required,numeric"`
	Env                string
	CorsAllowedOrigins []string

	DBUser                   string `validate:"required"`
	DBPassword               string
	DBHost                   string `validate:"required"`
	DBPort                   string `validate:"required,numeric"`
	DBName                   string `validate:"required"`
	DBMaxOpenConns           int    `validate:"gte=0"`
	DBMaxIdleConns           int    `validate:"gte=0"`
	DBConnMaxLifetimeSeconds int    `validate:"gte=0"`
	DBConnMaxIdleTimeSeconds int    `validate:"gte=0"`

	RedisAddress string `validate:"required,hostname_port"`

	LogLevel string `validate:"oneof=panic fatal error warn warning info debug trace"`

	DashboardTimezone       string `validate:"required,timezone"`
	DashboardTimeoutSeconds int    `validate:"gt=0"`
	ReportCacheEnabled      bool
	ReportCacheTTLSeconds   int   `validate:"gt=0"`
	ReportSlowMs            int64 `validate:"gt=0"`

	RateLimitEnabled       bool
	RateLimitMaxRequests   int64 `validate:"gt=0"`
	RateLimitWindowSeconds int   `validate:"gt=0"`

	SkipMigrations bool

	GCSBucket          string
	GCSCredentialsJSON string
	PubSubProjectId    string
	PubSubAlertsTopic  string
}

func init() {
	// Load env from .env
	godotenv.Load()
}

var validate = validator.New()

// LoadSettings reads the environment and validates the result.
func LoadSettings() (*Settings, error) {
	s := &Settings{
		Port:               firstNonEmpty(os.Getenv("PORT"), "8080"),
		Env:                strings.TrimSpace(os.Getenv("GO_ENV")),
		CorsAllowedOrigins: splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS")),

		DBUser:                   os.Getenv("DB_USER"),
		DBPassword:               os.Getenv("DB_PASSWORD"),
		DBHost:                   os.Getenv("DB_HOST"),
		DBPort:                   firstNonEmpty(os.Getenv("DB_PORT"), "3306"),
		DBName:                   os.Getenv("DB_NAME"),
		DBMaxOpenConns:           intFromEnv("DB_MAX_OPEN_CONNS", 50),
		DBMaxIdleConns:           intFromEnv("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeSeconds: intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300),
		DBConnMaxIdleTimeSeconds: intFromEnv("DB_CONN_MAX_IDLE_TIME_SECONDS", 60),

		RedisAddress: firstNonEmpty(os.Getenv("REDIS_ADDRESS"), "localhost:6379"),

		LogLevel: strings.ToLower(firstNonEmpty(os.Getenv("LOG_LEVEL"), "error")),

		DashboardTimezone:       firstNonEmpty(os.Getenv("DASHBOARD_TIMEZONE"), "UTC"),
		DashboardTimeoutSeconds: intFromEnv("DASHBOARD_TIMEOUT_SECONDS", 30),
		ReportCacheEnabled:      boolFromEnv("ENABLE_REPORT_CACHE"),
		ReportCacheTTLSeconds:   intFromEnv("REPORT_CACHE_TTL_SECONDS", 120),
		ReportSlowMs:            int64(intFromEnv("REPORT_SLOW_MS", 500)),

		RateLimitEnabled:       boolFromEnv("RATE_LIMIT_ENABLED"),
		RateLimitMaxRequests:   int64(intFromEnv("RATE_LIMIT_MAX_REQUESTS", 600)),
		RateLimitWindowSeconds: intFromEnv("RATE_LIMIT_WINDOW_SECONDS", 60),

		SkipMigrations: boolFromEnv("SKIP_MIGRATIONS"),

		GCSBucket:          strings.TrimSpace(os.Getenv("GCS_BUCKET")),
		GCSCredentialsJSON: os.Getenv("GCS_CREDENTIALS_JSON"),
		PubSubProjectId:    firstNonEmpty(os.Getenv("PUBSUB_PROJECT_ID"), os.Getenv("GOOGLE_CLOUD_PROJECT")),
		PubSubAlertsTopic:  strings.TrimSpace(os.Getenv("PUBSUB_ALERTS_TOPIC")),
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func (s *Settings) IsProduction() bool {
	return strings.EqualFold(s.Env, "production")
}

func (s *Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.DashboardTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *Settings) DashboardTimeout() time.Duration {
	return time.Duration(s.DashboardTimeoutSeconds) * time.Second
}

func (s *Settings) RateLimitWindow() time.Duration {
	return time.Duration(s.RateLimitWindowSeconds) * time.Second
}

func (s *Settings) ReportCacheTTL() time.Duration {
	return time.Duration(s.ReportCacheTTLSeconds) * time.Second
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolFromEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
