package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "factory")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_NAME", "factory")
}

func TestLoadSettingsDefaults(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{
		"PORT", "GO_ENV", "DB_PORT", "REDIS_ADDRESS", "LOG_LEVEL", "DASHBOARD_TIMEZONE",
		"DASHBOARD_TIMEOUT_SECONDS", "ENABLE_REPORT_CACHE", "REPORT_CACHE_TTL_SECONDS",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_MAX_REQUESTS", "RATE_LIMIT_WINDOW_SECONDS",
		"CORS_ALLOWED_ORIGINS", "SKIP_MIGRATIONS",
	} {
		t.Setenv(key, "")
	}

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, "3306", s.DBPort)
	assert.Equal(t, "localhost:6379", s.RedisAddress)
	assert.Equal(t, "error", s.LogLevel)
	assert.Equal(t, time.UTC, s.Location())
	assert.Equal(t, 30*time.Second, s.DashboardTimeout())
	assert.Equal(t, 2*time.Minute, s.ReportCacheTTL())
	assert.Equal(t, time.Minute, s.RateLimitWindow())
	assert.Equal(t, int64(600), s.RateLimitMaxRequests)
	assert.False(t, s.ReportCacheEnabled)
	assert.False(t, s.RateLimitEnabled)
	assert.False(t, s.SkipMigrations)
	assert.False(t, s.IsProduction())
	assert.Nil(t, s.CorsAllowedOrigins)
}

func TestLoadSettingsOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GO_ENV", "Production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DASHBOARD_TIMEZONE", "Asia/Yangon")
	t.Setenv("ENABLE_REPORT_CACHE", "true")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "45")
	t.Setenv("SKIP_MIGRATIONS", "1")
	t.Setenv("LOG_LEVEL", "DEBUG")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.True(t, s.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.CorsAllowedOrigins)
	assert.Equal(t, "Asia/Yangon", s.Location().String())
	assert.True(t, s.ReportCacheEnabled)
	assert.Equal(t, 45*time.Second, s.ReportCacheTTL())
	assert.True(t, s.SkipMigrations)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadSettingsValidation(t *testing.T) {
	cases := map[string]map[string]string{
		"missing db user":   {"DB_USER": ""},
		"bad port":          {"PORT": "http"},
		"bad timezone":      {"DASHBOARD_TIMEZONE": "Mars/Olympus"},
		"bad log level":     {"LOG_LEVEL": "loud"},
		"zero cache ttl":    {"REPORT_CACHE_TTL_SECONDS": "0"},
		"bad redis address": {"REDIS_ADDRESS": "no-port"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadSettings()
			assert.Error(t, err)
		})
	}
}

func TestBuildDSN(t *testing.T) {
	s := &Settings{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "3306", DBName: "factory"}
	dsn := BuildDSN(s)
	assert.Contains(t, dsn, "u:p@tcp(db:3306)/factory")
	assert.Contains(t, dsn, "parseTime=true")
}
