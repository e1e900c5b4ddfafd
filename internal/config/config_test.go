package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.ScrapingBee.Key)
	assert.Equal(t, "https://app.scrapingbee.com/api/v1/", cfg.ScrapingBee.BaseURL)
	assert.False(t, cfg.ScrapingBee.RenderJS)
	assert.Equal(t, 47140, cfg.Ebay.CategoryID)
	assert.Equal(t, 5, cfg.Comps.MinComps)
	assert.Equal(t, 20, cfg.Comps.TakeN)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "comps.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.Equal(t, 1500, cfg.Batch.DelayMs)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
scrapingbee:
  key: sb-test-key
  render_js: true
comps:
  min_comps: 3
store:
  driver: postgres
  database_url: postgres://localhost/comps
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sb-test-key", cfg.ScrapingBee.Key)
	assert.True(t, cfg.ScrapingBee.RenderJS)
	assert.Equal(t, 3, cfg.Comps.MinComps)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 20, cfg.Comps.TakeN)
	assert.Equal(t, 47140, cfg.Ebay.CategoryID)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("COMPS_STORE_DRIVER", "postgres")
	t.Setenv("COMPS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("COMPS_SCRAPINGBEE_KEY", "sb-env-key")
	t.Setenv("COMPS_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sb-env-key", cfg.ScrapingBee.Key)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Comps.MinComps = 5
	cfg.Comps.TakeN = 20
	cfg.Batch.Concurrency = 2
	cfg.Batch.DelayMs = 1500
	cfg.Server.Port = 8080
	cfg.Store.DatabaseURL = "comps.db"
	return cfg
}

func TestValidatePrice(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("price"))

	cfg.Comps.MinComps = 0
	err := cfg.Validate("price")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "min_comps")
}

func TestValidateBulk_ConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("bulk"))

	cfg.Batch.Concurrency = 0
	err := cfg.Validate("bulk")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency must be between 1 and 20")

	cfg.Batch.Concurrency = 21
	err = cfg.Validate("bulk")
	assert.Error(t, err)

	cfg.Batch.Concurrency = 20
	assert.NoError(t, cfg.Validate("bulk"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
