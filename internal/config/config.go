// Package config handles the on-disk TOML configuration: credentials for
// the three services and the local save path. The core client never reads
// this directly; the CLI loads it and passes credentials per call.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFileMode keeps the file private: it holds session cookies and
// tokens.
const configFileMode = 0o600

// Config is the persisted application configuration.
type Config struct {
	// Token is the Canvas bearer token.
	Token string `toml:"token"`
	// SavePath is where downloads land.
	SavePath string `toml:"save_path"`
	// JAAuthCookie is the identity provider cookie ("JAAuthCookie=...").
	JAAuthCookie string `toml:"ja_auth_cookie"`
	// VideoCookies is the raw cookie string for the video platform.
	VideoCookies string `toml:"video_cookies"`
	// JBoxUserToken is the 128-character storage token.
	JBoxUserToken string `toml:"jbox_user_token"`
}

// DefaultConfig returns a Config with usable defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{SavePath: filepath.Join(home, "Downloads")}
}

// DefaultPath returns the default config file location under the user
// config directory.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}

	return filepath.Join(base, "sjtu-canvas-helper", "config.toml")
}

// Load reads and parses a TOML config file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault reads the config file if it exists, otherwise returns the
// defaults so first runs work without any setup.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Save writes the config as TOML, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, configFileMode)
	if err != nil {
		return fmt.Errorf("opening config file %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}

	return nil
}
