package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.CatalogDir)
	assert.Zero(t, cfg.ItemsPerEvent)
	assert.Zero(t, cfg.SecondsPerEvent)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CATALOG_DIR", "/etc/rng")
	t.Setenv("ITEMS_PER_EVENT", "8")
	t.Setenv("SECONDS_PER_EVENT", "1.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "/etc/rng", cfg.CatalogDir)
	assert.Equal(t, 8.0, cfg.ItemsPerEvent)
	assert.Equal(t, 1.5, cfg.SecondsPerEvent)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("ITEMS_PER_EVENT", "many")
	_, err = Load()
	require.Error(t, err)
}
