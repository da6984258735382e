package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	original := &Config{
		Token:         "canvas-token",
		SavePath:      "/tmp/downloads",
		JAAuthCookie:  "JAAuthCookie=abc",
		VideoCookies:  "session=xyz; other=1",
		JBoxUserToken: "jbox-token",
	}

	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSave_FileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, Save(path, DefaultConfig()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "config holds credentials and must stay private")
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Token)
	assert.NotEmpty(t, cfg.SavePath)
}

func TestLoadOrDefault_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`token = "abc"`), 0o600))

	cfg, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.Token)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("token = "), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
