package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file written into the data directory.
const FileName = "daybook.yaml"

// Config represents the top-level daybook.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Storage  StorageConfig  `yaml:"storage"`
	Backup   BackupConfig   `yaml:"backup"`
	Reports  ReportsConfig  `yaml:"reports"`
}

// BusinessConfig identifies the books.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// StorageConfig locates the database file, relative to the data dir.
type StorageConfig struct {
	File string `yaml:"file"`
}

// BackupConfig controls the pre-write snapshots.
type BackupConfig struct {
	Dir  string `yaml:"dir"`  // relative to the data dir
	Keep int    `yaml:"keep"` // snapshots retained; 0 = unlimited
}

// ReportsConfig tunes report behavior.
type ReportsConfig struct {
	// CashKeywords mark cash-flow accounts by name substring.
	CashKeywords []string `yaml:"cash_keywords"`
}

// Load reads a daybook.yaml file from disk.
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

// Default returns a Config with sensible defaults for new books.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Storage:  StorageConfig{File: "daybook.db"},
		Backup:   BackupConfig{Dir: "db_backups", Keep: 20},
		Reports:  ReportsConfig{CashKeywords: []string{"cash", "bank"}},
	}
}

// DatabasePath resolves the database file under dataDir.
func (c *Config) DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, c.Storage.File)
}

// BackupDir resolves the snapshot directory under dataDir.
func (c *Config) BackupDir(dataDir string) string {
	return filepath.Join(dataDir, c.Backup.Dir)
}
