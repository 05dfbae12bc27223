package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, Default(), FromEnv(envMap(nil)))
	})

	t.Run("overrides", func(t *testing.T) {
		cfg := FromEnv(envMap(map[string]string{
			"CANOPY_LOG_LEVEL":  "debug",
			"CANOPY_LOG_FORMAT": "json",
			"CANOPY_SELECTOR":   "$.files[*]",
			"CANOPY_CACHE_SIZE": "4",
			"CANOPY_VALIDATE":   "false",
		}))

		assert.Equal(t, Config{
			LogLevel:  "debug",
			LogFormat: "json",
			Selector:  "$.files[*]",
			CacheSize: 4,
			Validate:  false,
		}, cfg)
	})

	t.Run("malformed values keep defaults", func(t *testing.T) {
		cfg := FromEnv(envMap(map[string]string{
			"CANOPY_CACHE_SIZE": "-2",
			"CANOPY_VALIDATE":   "sometimes",
		}))
		assert.Equal(t, 16, cfg.CacheSize)
		assert.True(t, cfg.Validate)
	})
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CANOPY_SELECTOR='$.listing[*]'\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("CANOPY_LOG_LEVEL", "error")
	// godotenv never overrides variables that are already set; register the
	// one it will set so the test environment is restored afterwards.
	t.Setenv("CANOPY_SELECTOR", "")
	require.NoError(t, os.Unsetenv("CANOPY_SELECTOR"))

	cfg := Load()
	assert.Equal(t, "$.listing[*]", cfg.Selector)
	assert.Equal(t, "error", cfg.LogLevel)
}
