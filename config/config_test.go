package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
http:
  address: ":9090"
storage:
  driver: redis
redis:
  addr: localhost:6379
search:
  cache_ttl: 30m
auth:
  idle_timeout: 2m
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Search.CacheTTL)
	assert.Equal(t, 2*time.Minute, cfg.Auth.IdleTimeout)
	// untouched sections keep their defaults
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Latency)
	assert.Equal(t, 5, cfg.Booking.MaxPassengers)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Auth.IdleTimeout)
	assert.Equal(t, time.Second, cfg.Auth.ExpiryTick)
	assert.Equal(t, time.Hour, cfg.Search.CacheTTL)
	assert.Equal(t, 50, cfg.Booking.DefaultSeats)
	assert.Equal(t, int64(20000), cfg.Search.PriceMax)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SKYFARE_STORAGE_DRIVER", "postgres")
	t.Setenv("SKYFARE_AUTH_SECRET", "s3cret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "s3cret", cfg.Auth.TokenSecret)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unterminated"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "skyfare", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=skyfare sslmode=disable", d.DSN())
}
