package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, "json", cfg.Format)
	assert.Contains(t, cfg.EntryPatterns, "^main$")
}

func TestSaveAndLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Workers = 3
	cfg.Format = "dot"
	cfg.Exclude = []string{"generated"}
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Workers)
	assert.Equal(t, "dot", loaded.Format)
	assert.Equal(t, []string{"generated"}, loaded.Exclude)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv("GGQ_WORKERS", "7")
	t.Setenv("GGQ_EXTENSIONS", "go, py")
	t.Setenv("GGQ_VERBOSE", "true")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers)
	assert.Equal(t, []string{"go", "py"}, cfg.Extensions)
	assert.True(t, cfg.Verbose)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.CacheSize = -5
	assert.Error(t, cfg.Validate())
}
