package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimal = `
[database]
host = "db"
port = 5433
user = "barber"
password = "from-file"
dbname = "booking"

[auth]
mode = "jwt"
jwt_secret = "file-secret"
`

func TestLoad_DefaultsAndFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.True(t, cfg.Auth.StrictPointLookup)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "host=db port=5433 user=barber password=from-file dbname=booking sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "postgres://barber:from-file@db:5433/booking?sslmode=disable", cfg.Database.URL())
	assert.Equal(t, "file://migrations", cfg.Migrations.SourceURL())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "env-db")
	t.Setenv("JWT_SECRET", "env-jwt")
	t.Setenv("REDIS_PASSWORD", "env-redis")

	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, "env-db", cfg.Database.Password)
	assert.Equal(t, "env-jwt", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-redis", cfg.Redis.Password)
}

func TestLoad_OpenPointLookup(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal+"strict_point_lookup = false\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Auth.StrictPointLookup)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"jwt without secret", func(c *Config) { c.Auth.JWTSecret = "" }, "jwt_secret"},
		{"remote without url", func(c *Config) { c.Auth.Mode = AuthModeRemote }, "identity_service.url"},
		{"remote with url", func(c *Config) {
			c.Auth.Mode = AuthModeRemote
			c.IdentityService.URL = "http://auth:8081"
		}, ""},
		{"unknown mode", func(c *Config) { c.Auth.Mode = "basic" }, "unknown mode"},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }, "http_port"},
		{"redis without ttl", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.CacheTTL = 0
		}, "redis"},
		{"relative metrics path", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Path = "metrics"
		}, "metrics.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Database.DBName = "booking"
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
