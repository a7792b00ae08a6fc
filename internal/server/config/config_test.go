package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Equal(t, "sqlite", c.StorageBackend)
	assert.Equal(t, 256, c.CacheSize)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"server", "-a", ":9090", "-t", "5"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
}

func TestStorageOptions(t *testing.T) {
	c := Config{StorageBackend: "postgres", PostgresDSN: "postgres://db/maps"}

	o, err := c.StorageOptions()
	require.NoError(t, err)
	assert.Equal(t, repomanager.BackendPostgres, o.Backend)
	assert.Equal(t, "postgres://db/maps", o.PostgresDSN)

	c.StorageBackend = "tape"
	_, err = c.StorageOptions()
	require.Error(t, err)
}

func TestLocationAndLevel(t *testing.T) {
	loc, err := (&Config{}).Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = (&Config{TimeZone: "Nowhere/Special"}).Location()
	require.Error(t, err)

	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "chatty"}).Level())
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).Level())
}
