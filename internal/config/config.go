// Package config loads the YAML configuration shared by the CLI and the HTTP service.
//
// Every field has a default, so a missing file is not an error for callers that
// use Default. Command-line flags override values read from the file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"hotel-reconciliation/internal/domain"
)

// Config represents the entire application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
}

// ServerConfig holds HTTP service settings
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" validate:"gt=0"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// ReportConfig holds the default view of the detailed table
type ReportConfig struct {
	Columns           []string `yaml:"columns"`
	DiscrepanciesOnly bool     `yaml:"discrepancies_only"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cols := make([]string, len(domain.DefaultColumns))
	for i, c := range domain.DefaultColumns {
		cols[i] = string(c)
	}
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			MaxUploadBytes:  32 << 20,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Report: ReportConfig{
			Columns:           cols,
			DiscrepanciesOnly: true,
		},
	}
}

// Load reads the config file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the report columns exist.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := c.Report.ParsedColumns(); err != nil {
		return fmt.Errorf("config validation failed: report.columns: %w", err)
	}
	return nil
}

// ParsedColumns resolves the configured column names.
func (r ReportConfig) ParsedColumns() ([]domain.Column, error) {
	cols := make([]domain.Column, 0, len(r.Columns))
	for _, name := range r.Columns {
		col, err := domain.ParseColumn(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}
