package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heropick/internal/config"
	"heropick/internal/eventbus"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("[search]\nquiet_ms = 0\n"), 0644))

	opts, err := parseFlags([]string{"--config", path})
	require.NoError(t, err)

	cfg, err := loadConfig(opts, eventbus.NullBus{}, discardLogger())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), path)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFileName)

	opts, err := parseFlags([]string{"--config", path})
	require.NoError(t, err)

	cfg, err := loadConfig(opts, eventbus.NullBus{}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadConfigAppliesFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFileName)

	opts, err := parseFlags([]string{
		"--config", path,
		"--proxy", "http://proxy.internal:9000",
		"--min-chars", "3",
		"--quiet", "450",
		"--limit", "25",
	})
	require.NoError(t, err)

	cfg, err := loadConfig(opts, eventbus.NullBus{}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "http://proxy.internal:9000", cfg.ProxyURL)
	assert.Equal(t, 3, cfg.Search.MinChars)
	assert.Equal(t, 450, cfg.Search.QuietMs)
	assert.Equal(t, 25, cfg.Search.Limit)
}

func TestLoadConfigRejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFileName)

	opts, err := parseFlags([]string{"--config", path, "--limit", "500"})
	require.NoError(t, err)

	_, err = loadConfig(opts, eventbus.NullBus{}, discardLogger())
	assert.Error(t, err)
}
