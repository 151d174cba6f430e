package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 80, cfg.Limits.MaxLineLen)
	require.Equal(t, 31, cfg.Limits.MaxLabelLen)
	require.Equal(t, 100, cfg.Limits.InitialIC)
	require.Equal(t, -1<<20, cfg.Limits.MinImmediate)
	require.Equal(t, 1<<20-1, cfg.Limits.MaxImmediate)
	require.Equal(t, ".am", cfg.Output.IntermediateExt)
	require.Equal(t, ".ob", cfg.Output.ObjectExt)
	require.False(t, cfg.Logging.Verbose)
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	require.NotEmpty(t, path)
	require.Equal(t, "config.toml", filepath.Base(path))
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Limits.MaxLineLen = 120
	cfg.Logging.Verbose = true
	cfg.Output.Directory = "/tmp/out"

	require.NoError(t, cfg.SaveTo(configPath))
	require.FileExists(t, configPath)

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)
	require.Equal(t, 120, loaded.Limits.MaxLineLen)
	require.True(t, loaded.Logging.Verbose)
	require.Equal(t, "/tmp/out", loaded.Output.Directory)
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	require.NoError(t, err)
	require.Equal(t, 80, cfg.Limits.MaxLineLen)
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[limits]
max_line_len = "not a number"
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidTOML), 0644))

	_, err := LoadFrom(configPath)
	require.Error(t, err)
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SaveTo(configPath))
	require.FileExists(t, configPath)
}
