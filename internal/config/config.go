package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds settings for both the backend API and the dashboard server.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Dashboard DashboardConfig `toml:"dashboard"`
	AI        AIConfig        `toml:"ai"`
	LogLevel  string          `toml:"log_level"`
}

// ServerConfig configures the backend Scoring API process.
type ServerConfig struct {
	Addr          string   `toml:"addr"`
	DBPath        string   `toml:"db_path"`
	DefaultWindow string   `toml:"default_window"`
	Timeout       duration `toml:"timeout"`
}

// DashboardConfig configures the frontend process. BackendURL is the
// loopback address every /api/v1/* request is forwarded to.
type DashboardConfig struct {
	Addr       string   `toml:"addr"`
	BackendURL string   `toml:"backend_url"`
	Timeout    duration `toml:"timeout"`
}

// AIConfig configures the optional LLM-backed summarizer. The API key is
// read from the environment only, never from the config file.
type AIConfig struct {
	Model string `toml:"model"`
}

// duration lets TOML carry values like "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          ":8000",
			DBPath:        "systemboam.db",
			DefaultWindow: "7d",
			Timeout:       duration{30 * time.Second},
		},
		Dashboard: DashboardConfig{
			Addr:       ":8080",
			BackendURL: "http://127.0.0.1:8000",
			Timeout:    duration{15 * time.Second},
		},
		AI: AIConfig{
			Model: "gpt-4o-mini",
		},
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, an optional TOML file, and
// environment overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if v := os.Getenv("SYSTEMBOAM_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SYSTEMBOAM_DB"); v != "" {
		cfg.Server.DBPath = v
	}
	if v := os.Getenv("SYSTEMBOAM_BACKEND_URL"); v != "" {
		cfg.Dashboard.BackendURL = v
	}
	if v := os.Getenv("SYSTEMBOAM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// OpenAIKey returns the OpenAI API key from the environment, empty when
// the LLM summarizer is disabled.
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
