package store

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Input  string `yaml:"input"`
	Report struct {
		Precision int32  `yaml:"precision"`
		Format    string `yaml:"format"`
		Parallel  bool   `yaml:"parallel"`
		Save      bool   `yaml:"save"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"report"`
	Log struct {
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	c.Report.Precision = 6
	c.Report.Format = "text"
	c.Report.OutputDir = "reports"
	c.Log.Dir = "logs"
	return &c
}

func (c *Config) Validate() error {
	if c.Report.Precision < 0 || c.Report.Precision > 18 {
		return fmt.Errorf("report.precision must be between 0-18, got %d", c.Report.Precision)
	}
	switch c.Report.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid report.format '%s': must be 'text', 'json' or 'csv'", c.Report.Format)
	}
	if c.Report.Save && c.Report.OutputDir == "" {
		return fmt.Errorf("report.output_dir cannot be empty when report.save is set")
	}
	if c.Log.RetentionDays < 0 {
		return fmt.Errorf("log.retention_days cannot be negative, got %d", c.Log.RetentionDays)
	}
	return nil
}

// LoadConfig reads the YAML file at path over the defaults, applies
// environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	if c.Report.Format == "" {
		c.Report.Format = "text"
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("REPORT_LOG_DIR"); v != "" {
		c.Log.Dir = v
	}
	if v := os.Getenv("REPORT_LOG_RETENTION_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REPORT_LOG_RETENTION_DAYS %q: %w", v, err)
		}
		c.Log.RetentionDays = n
	}
	return nil
}

// ApplyEnv applies environment overrides to a config not read from a file.
func (c *Config) ApplyEnv() error {
	if err := c.applyEnv(); err != nil {
		return err
	}
	return c.Validate()
}
