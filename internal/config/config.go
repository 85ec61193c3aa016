package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level solobank.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Assessor AssessorConfig `yaml:"assessor"`
	Seed     SeedConfig     `yaml:"seed"`
}

// DatabaseConfig locates the SQLite ledger database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	Metrics    bool   `yaml:"metrics"`
}

// AssessorConfig points at the external credit assessment service.
// An empty URL means assessments always use the local rule evaluator.
type AssessorConfig struct {
	URL            string `yaml:"url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the assessor request timeout as a duration.
func (a AssessorConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// SeedConfig controls initial data loading.
type SeedConfig struct {
	FixturesDir string `yaml:"fixtures_dir,omitempty"`
}

// Load reads a solobank.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new deployment.
func Default(dbPath string) *Config {
	return &Config{
		Database: DatabaseConfig{Path: dbPath},
		Server: ServerConfig{
			ListenAddr: ":8080",
			Metrics:    true,
		},
		Assessor: AssessorConfig{TimeoutSeconds: 60},
	}
}
