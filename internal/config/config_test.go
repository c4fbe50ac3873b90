package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TASKIFY_STORAGE_BACKEND", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, cfg.DatabaseURL, cfg.Storage.DatabaseURL)
	assert.NotEmpty(t, cfg.Storage.DataDir)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TASKIFY_STORAGE_BACKEND", "memory")
	t.Setenv("TASKIFY_STORAGE_KEY", "other-key")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "other-key", cfg.Storage.Key)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("TASKIFY_STORAGE_BACKEND", "")

	path := filepath.Join(t.TempDir(), "taskify.yaml")
	content := `
port: "7000"
log_level: debug
storage:
  backend: sqlite
  sqlite_path: /tmp/tasks.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/tasks.db", cfg.Storage.SQLitePath)
	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
}
