// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bounds for the job limits
const (
	MinJobLimit = 1
	MaxJobLimit = 50
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	UploadDir   string `json:"upload_dir,omitempty" yaml:"upload_dir,omitempty"`     // Where raw uploads are kept; empty keeps none

	// Limits
	DefaultJobLimit        int   `json:"default_job_limit,omitempty" yaml:"default_job_limit,omitempty"`               // Jobs compared by multi-job analysis
	RecommendationJobLimit int   `json:"recommendation_job_limit,omitempty" yaml:"recommendation_job_limit,omitempty"` // Jobs behind recommendations
	MaxUploadBytes         int64 `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty"`

	// Rate limiting
	RateLimitRPS   float64 `json:"rate_limit_rps,omitempty" yaml:"rate_limit_rps,omitempty"`
	RateLimitBurst int     `json:"rate_limit_burst,omitempty" yaml:"rate_limit_burst,omitempty"`

	// Alerts
	AMQPURL       string `json:"amqp_url,omitempty" yaml:"amqp_url,omitempty"`
	AlertExchange string `json:"alert_exchange,omitempty" yaml:"alert_exchange,omitempty"`

	// Object storage
	S3Region   string `json:"s3_region,omitempty" yaml:"s3_region,omitempty"`
	S3Endpoint string `json:"s3_endpoint,omitempty" yaml:"s3_endpoint,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                   8080,
		DefaultJobLimit:        10,
		RecommendationJobLimit: 20,
		MaxUploadBytes:         5 << 20,
		RateLimitRPS:           10,
		RateLimitBurst:         20,
		AlertExchange:          "job_alerts",
		S3Region:               "us-east-1",
	}
}

// LoadConfig loads configuration from a JSON file, or YAML when the file ends in .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Zero values are
// accepted since MergeWithDefaults fills them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.DefaultJobLimit != 0 && (c.DefaultJobLimit < MinJobLimit || c.DefaultJobLimit > MaxJobLimit) {
		return fmt.Errorf("config error: 'default_job_limit' must be between %d and %d", MinJobLimit, MaxJobLimit)
	}
	if c.RecommendationJobLimit != 0 && (c.RecommendationJobLimit < MinJobLimit || c.RecommendationJobLimit > MaxJobLimit) {
		return fmt.Errorf("config error: 'recommendation_job_limit' must be between %d and %d", MinJobLimit, MaxJobLimit)
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: rate limits must be non-negative")
	}

	if c.UploadDir != "" {
		info, err := os.Stat(c.UploadDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("config error: upload directory not found: %s", c.UploadDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}
	if result.AMQPURL == "" {
		result.AMQPURL = defaults.AMQPURL
	}
	if result.AlertExchange == "" {
		result.AlertExchange = defaults.AlertExchange
	}
	if result.S3Region == "" {
		result.S3Region = defaults.S3Region
	}
	if result.S3Endpoint == "" {
		result.S3Endpoint = defaults.S3Endpoint
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DefaultJobLimit == 0 {
		result.DefaultJobLimit = defaults.DefaultJobLimit
	}
	if result.RecommendationJobLimit == 0 {
		result.RecommendationJobLimit = defaults.RecommendationJobLimit
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
