// Package config manages DuckTyper configuration.
// Config lives at ~/.quack/config.toml; QUACK_HOME relocates the data
// directory and a handful of env vars override individual settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds all DuckTyper configuration.
type Config struct {
	User     UserConfig     `toml:"user"`
	API      APIConfig      `toml:"api"`
	Progress ProgressConfig `toml:"progress"`
	Journal  JournalConfig  `toml:"journal"`
}

// UserConfig identifies the local user.
type UserConfig struct {
	GitHubUsername string `toml:"github_username" env:"DUCKTYPER_GITHUB_USERNAME"`
}

// APIConfig controls the local HTTP API server.
type APIConfig struct {
	Host string `toml:"host" env:"DUCKTYPER_API_HOST"`
	Port int    `toml:"port" env:"DUCKTYPER_API_PORT"`
}

// ProgressConfig controls where the progress record lives.
type ProgressConfig struct {
	File string `toml:"file" env:"DUCKTYPER_PROGRESS_FILE"`
}

// JournalConfig controls the event history journal.
type JournalConfig struct {
	Dir     string `toml:"dir" env:"DUCKTYPER_JOURNAL_DIR"`
	Enabled bool   `toml:"enabled"`
}

// DefaultConfig returns sensible defaults rooted at the quack home.
func DefaultConfig() Config {
	home := QuackHome()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8642,
		},
		Progress: ProgressConfig{
			File: filepath.Join(home, "ducktyper_user.json"),
		},
		Journal: JournalConfig{
			Dir:     home,
			Enabled: true,
		},
	}
}

// Load reads config from ~/.quack/config.toml, falling back to defaults,
// then applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(QuackHome(), "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env overrides: %w", err)
	}
	return cfg, nil
}

// Save writes the config to ~/.quack/config.toml.
func Save(cfg Config) error {
	path := filepath.Join(QuackHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// QuackHome returns the DuckTyper data directory.
func QuackHome() string {
	if env := os.Getenv("QUACK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quack")
}
