package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration.
type Config struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// Profile holds the settings for one environment (backend address,
// aggregator credentials, voice capture command).
type Profile struct {
	BackendURL  string   `toml:"backend_url"`
	Model       string   `toml:"model"`
	StressScore int      `toml:"stress_score"`
	Activities  []string `toml:"activities"`

	Health HealthConfig `toml:"health"`
	Voice  VoiceConfig  `toml:"voice"`
}

// HealthConfig holds aggregator credentials for one profile.
type HealthConfig struct {
	BaseURL string `toml:"base_url"`
	DevID   string `toml:"dev_id"`
	APIKey  string `toml:"api_key"`
	Source  string `toml:"source"`
}

// VoiceConfig holds the transcriber command used by the voice panel.
type VoiceConfig struct {
	// Command is the argv of an external speech-to-text tool that prints
	// the transcript on stdout.
	Command []string `toml:"command"`
}

// DefaultPath returns the default config file path using XDG conventions.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "flowstate", "config.toml")
}

// LoadFrom reads and parses the config file at the given path, applying
// defaults after parsing.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if len(cfg.Profiles) == 0 {
		return nil, fmt.Errorf("config has no profiles defined")
	}
	for name, p := range cfg.Profiles {
		if p.BackendURL == "" {
			p.BackendURL = "http://127.0.0.1:5002"
		}
		if p.Model == "" {
			p.Model = "particle-wave"
		}
		if len(p.Activities) == 0 {
			p.Activities = []string{"meditation", "exercise", "reading"}
		}
		if p.Health.Source == "" {
			p.Health.Source = "apple_health"
		}
		cfg.Profiles[name] = p
	}
	return &cfg, nil
}

// ProfileNames returns the sorted list of profile names.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
