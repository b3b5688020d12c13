// Package config loads and saves pantry client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all pantry configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Session    SessionConfig    `toml:"session"`
	Appearance AppearanceConfig `toml:"appearance"`
	Locale     LocaleConfig     `toml:"locale"`
	General    GeneralConfig    `toml:"general"`
}

// ServerConfig holds the remote API settings.
type ServerConfig struct {
	BaseURL string `toml:"base_url"`
}

// SessionConfig holds the persisted session token.
type SessionConfig struct {
	Token string `toml:"token,omitempty"`
}

// AppearanceConfig holds theme settings.
// Mode is one of "light", "dark", or "auto".
type AppearanceConfig struct {
	Mode string `toml:"mode"`
}

// LocaleConfig holds language and currency preferences.
type LocaleConfig struct {
	Language string `toml:"language"`
	Currency string `toml:"currency"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultDays int  `toml:"default_days"`
	NoCache     bool `toml:"no_cache,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8080/api",
		},
		Appearance: AppearanceConfig{
			Mode: "auto",
		},
		Locale: LocaleConfig{
			Language: "en",
			Currency: "USD",
		},
		General: GeneralConfig{
			DefaultDays: 30,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pantry")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pantry")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory and environment variables
// (PANTRY_SERVER, PANTRY_TOKEN) override the stored values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers .env and process environment overrides onto cfg.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PANTRY_SERVER"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("PANTRY_TOKEN"); v != "" {
		cfg.Session.Token = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
