package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStruct(t *testing.T) {
	cfg := &Config{
		ServerURL:    "http://localhost:8000",
		CallbackAddr: "127.0.0.1:4242",
		Debug:        true,
		UI:           UIConfig{Compact: true, Color: "never"},
	}

	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, "127.0.0.1:4242", cfg.CallbackAddr)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.UI.Compact)
	assert.Equal(t, "never", cfg.UI.Color)
}

func TestConfigLoad_File(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	content := `server_url: http://localhost:8001
callback_addr: 127.0.0.1:9999
debug: true
ui:
  compact: true
  color: always
`

	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8001", cfg.ServerURL)
	assert.Equal(t, "127.0.0.1:9999", cfg.CallbackAddr)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.UI.Compact)
	assert.Equal(t, "always", cfg.UI.Color)
}

func TestConfigLoad_Defaults(t *testing.T) {
	nonExistentPath := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	cfg, err := Load(nonExistentPath)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ServerURL, "should have default server URL")
	assert.Equal(t, "127.0.0.1:4242", cfg.CallbackAddr, "should have default callback address")
	assert.False(t, cfg.Debug, "debug should default to false")
	assert.Equal(t, "auto", cfg.UI.Color)
}

func TestConfigSave(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := &Config{
		ServerURL:    "http://saved.example.com",
		CallbackAddr: "127.0.0.1:4242",
		Debug:        false,
	}

	err := Save(cfg, configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm(), "should have 0644 permissions")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "server_url: http://saved.example.com")
	assert.Contains(t, content, "callback_addr: 127.0.0.1:4242")
}

func TestConfigSaveLoad_RoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	original := &Config{
		ServerURL:    "http://roundtrip.example.com",
		CallbackAddr: "127.0.0.1:5555",
		Debug:        true,
		UI:           UIConfig{Compact: true, Color: "never"},
	}

	require.NoError(t, Save(original, configPath))

	loaded, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, original, loaded)
}

func TestDiscoverPath_FlagProvided(t *testing.T) {
	tempDir := t.TempDir()
	flagPath := filepath.Join(tempDir, "flag-config.yaml")

	err := os.WriteFile(flagPath, []byte("test: flag"), 0644)
	require.NoError(t, err)

	discovered := DiscoverPath(flagPath)
	assert.Equal(t, flagPath, discovered, "should use flag-provided path")
}

func TestDiscoverPath_EnvVar(t *testing.T) {
	tempDir := t.TempDir()
	envPath := filepath.Join(tempDir, "env-config.yaml")

	err := os.WriteFile(envPath, []byte("test: env"), 0644)
	require.NoError(t, err)

	t.Setenv("PROJECTS42_CONFIG", envPath)

	discovered := DiscoverPath("")
	assert.Equal(t, envPath, discovered, "should use PROJECTS42_CONFIG env var")
}

func TestDiscoverPath_Default(t *testing.T) {
	discovered := DiscoverPath("")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	expectedDefault := filepath.Join(homeDir, ".projects42", "config.yaml")
	assert.Equal(t, expectedDefault, discovered, "should fallback to default path")
}

func TestDiscoverPath_Precedence(t *testing.T) {
	tempDir := t.TempDir()

	flagPath := filepath.Join(tempDir, "flag.yaml")
	envPath := filepath.Join(tempDir, "env.yaml")

	err := os.WriteFile(flagPath, []byte("test: flag"), 0644)
	require.NoError(t, err)
	err = os.WriteFile(envPath, []byte("test: env"), 0644)
	require.NoError(t, err)

	t.Setenv("PROJECTS42_CONFIG", envPath)

	discovered := DiscoverPath(flagPath)
	assert.Equal(t, flagPath, discovered, "flag should take precedence over env var")
}

func TestLoadFromEnv_ServerURL(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	content := `server_url: http://file.example.com
callback_addr: 127.0.0.1:4242
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	t.Setenv("PROJECTS42_SERVER_URL", "http://env.example.com")

	cfg, err := LoadWithEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example.com", cfg.ServerURL, "env var should override file")
	assert.Equal(t, "127.0.0.1:4242", cfg.CallbackAddr, "non-overridden values should come from file")
}

func TestLoadFromEnv_Precedence(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	content := `server_url: http://file.example.com
callback_addr: 127.0.0.1:4242
debug: false
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	t.Setenv("PROJECTS42_SERVER_URL", "http://env.example.com")
	t.Setenv("PROJECTS42_DEBUG", "true")

	cfg, err := LoadWithEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://env.example.com", cfg.ServerURL, "env should override file")
	assert.Equal(t, "127.0.0.1:4242", cfg.CallbackAddr, "file value when no env var")
	assert.True(t, cfg.Debug, "env var should override file for bool")
}

func TestLoadWithEnv_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, "127.0.0.1:4242", cfg.CallbackAddr)
	assert.Equal(t, "auto", cfg.UI.Color)
}
