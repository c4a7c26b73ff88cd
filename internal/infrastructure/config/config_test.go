package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "serin", cfg.Host.Name)
	assert.Equal(t, "appmodules", cfg.Host.ExtensionsDir)
	assert.Equal(t, "desktop", cfg.Keyboard.Layout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SERIN_KEYBOARD_LAYOUT", "laptop")
	t.Setenv("SERIN_EXTENSIONS_DIR", "/opt/serin/appmodules")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "laptop", cfg.Keyboard.Layout)
	assert.Equal(t, "/opt/serin/appmodules", cfg.Host.ExtensionsDir)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "serin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keyboard:
  layout: laptop
api:
  addr: "127.0.0.1:9000"
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "laptop", cfg.Keyboard.Layout)
	assert.Equal(t, "127.0.0.1:9000", cfg.API.Addr)
	// untouched values keep their defaults
	assert.Equal(t, "serin", cfg.Host.Name)
}

func TestLoadFileMissingFallsBackToEnv(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "desktop", cfg.Keyboard.Layout)
}

func TestLoadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "serin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keyboard: [oops"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
