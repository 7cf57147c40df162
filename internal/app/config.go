package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raysh454/inspectra/internal/analyzer"
	"github.com/raysh454/inspectra/internal/history"
	"gopkg.in/yaml.v3"
)

// Config aggregates the per-component configuration.
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Analyzer analyzer.Config `yaml:"analyzer"`
	History  history.Config  `yaml:"history"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

type ServerConfig struct {
	ListenAddr     string        `yaml:"listen_addr"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	ShutdownGrace  time.Duration `yaml:"shutdown_grace"`
}

// DefaultConfig returns a Config populated with development defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:     ":8080",
			MaxUploadBytes: 10 << 20,
			ShutdownGrace:  10 * time.Second,
		},
		Analyzer: analyzer.DefaultConfig(),
		History:  history.DefaultConfig(),
		LogLevel: "info",
	}
}

// LoadConfig reads the YAML file at path over the defaults. An empty path
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		p, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", p, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML from %s: %w", p, err)
		}
	}
	if cfg.History.DBPath != "" {
		p, err := ExpandPath(cfg.History.DBPath)
		if err != nil {
			return nil, err
		}
		cfg.History.DBPath = p
	}
	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
