// Package config loads server configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server-level defaults applied to every tool invocation.
type Config struct {
	CLIPath            string `yaml:"cli_path"`
	Model              string `yaml:"model"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	WaitTimeoutSeconds int    `yaml:"wait_timeout_seconds"`
	LogLevel           string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CLIPath:            "gemini",
		TimeoutSeconds:     300,
		WaitTimeoutSeconds: 5,
		LogLevel:           "info",
	}
}

// Load reads configuration from path. An empty path or a missing file
// yields the defaults; a present but invalid file is an error.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if config.CLIPath == "" {
		config.CLIPath = "gemini"
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = 300
	}
	if config.WaitTimeoutSeconds <= 0 {
		config.WaitTimeoutSeconds = 5
	}

	return config, nil
}

// Timeout returns the read-stage deadline.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WaitTimeout returns the graceful shutdown window.
func (c *Config) WaitTimeout() time.Duration {
	return time.Duration(c.WaitTimeoutSeconds) * time.Second
}
