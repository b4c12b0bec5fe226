// Package config handles loading and persisting user configuration
// for chatprobe. Configuration is stored in ~/.chatprobe/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	dirName        = ".chatprobe"
	fileName       = "config.json"
	defaultBaseURL = "http://localhost:3434"
	envKeyURL      = "CHATPROBE_URL"
	envKeyModel    = "CHATPROBE_MODEL"
)

// Config holds the user's configuration. An empty Model means the
// model is auto-selected from what the server advertises.
type Config struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model,omitempty"`
}

// Dir returns the configuration directory path.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dirName)
}

func configPath() string {
	return filepath.Join(Dir(), fileName)
}

// Load reads the configuration from disk and environment variables.
// Environment overrides file, file overrides defaults. Load never
// fails; a missing or broken file just means defaults.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL: defaultBaseURL,
	}

	data, err := os.ReadFile(configPath())
	if err == nil {
		_ = json.Unmarshal(data, cfg)
	}

	if url := os.Getenv(envKeyURL); url != "" {
		cfg.BaseURL = url
	}
	if model := os.Getenv(envKeyModel); model != "" {
		cfg.Model = model
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return cfg, nil
}

// save persists the config to disk.
func save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0o600)
}

func loadFile() *Config {
	cfg := &Config{BaseURL: defaultBaseURL}
	data, err := os.ReadFile(configPath())
	if err == nil {
		_ = json.Unmarshal(data, cfg)
	}
	return cfg
}

// SetBaseURL saves the server base URL to the config file.
func SetBaseURL(url string) error {
	cfg := loadFile()
	cfg.BaseURL = url
	return save(cfg)
}

// SetModel saves the model preference to the config file. An empty
// string restores auto-selection.
func SetModel(model string) error {
	cfg := loadFile()
	cfg.Model = model
	return save(cfg)
}
