package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds everything gatekeep reads at startup.
type Config struct {
	// Listen is the bind address for the approval bridge. Port 0 picks a
	// free port.
	Listen string `yaml:"listen"`
	// RequestTimeoutMinutes bounds how long a bridge client waits for a
	// decision before the request is aborted on its behalf.
	RequestTimeoutMinutes int `yaml:"request_timeout_minutes"`
	// AccentColor is the ANSI-256 color used for the modal's accent bar
	// and highlighted button.
	AccentColor string `yaml:"accent_color"`
	// HistoryLines caps the transcript kept in memory.
	HistoryLines int `yaml:"history_lines"`
	// AutoApprove lists command patterns ("<token> *") approved without
	// prompting.
	AutoApprove []string `yaml:"auto_approve"`
}

// Load reads and validates a config file, filling defaults for omitted
// fields.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if cfg.RequestTimeoutMinutes < 0 {
		return nil, fmt.Errorf("request_timeout_minutes must not be negative in %s", filename)
	}
	if cfg.HistoryLines < 0 {
		return nil, fmt.Errorf("history_lines must not be negative in %s", filename)
	}
	for _, pattern := range cfg.AutoApprove {
		if strings.TrimSpace(pattern) == "" {
			return nil, fmt.Errorf("auto_approve contains a blank pattern in %s", filename)
		}
	}

	return &cfg, nil
}

// AutoApproved reports whether pattern is in the configured auto-approve
// list.
func (c *Config) AutoApproved(pattern string) bool {
	for _, p := range c.AutoApprove {
		if p == pattern {
			return true
		}
	}
	return false
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.RequestTimeoutMinutes == 0 {
		c.RequestTimeoutMinutes = def.RequestTimeoutMinutes
	}
	if c.AccentColor == "" {
		c.AccentColor = def.AccentColor
	}
	if c.HistoryLines == 0 {
		c.HistoryLines = def.HistoryLines
	}
}
