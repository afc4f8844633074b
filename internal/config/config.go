// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-matcher/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config is the configuration that can be loaded from a YAML (or JSON) file.
// All fields are optional; missing values use defaults or come from CLI flags.
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Fetch    FetchConfig    `yaml:"fetch" json:"fetch"`
	Logger   logger.Config  `yaml:"logger" json:"logger"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" json:"max_upload_bytes"` // multipart upload limit
	AllowedOrigin   string        `yaml:"allowed_origin" json:"allowed_origin"`     // CORS origin
}

// AnalysisConfig configures the skill dictionary.
type AnalysisConfig struct {
	DictionaryPath string `yaml:"dictionary_path" json:"dictionary_path"` // empty = embedded dictionary
}

// FetchConfig configures job-posting retrieval by URL.
type FetchConfig struct {
	UseBrowser        bool          `yaml:"use_browser" json:"use_browser"` // render pages in headless Chrome
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	AllowPrivateHosts bool          `yaml:"allow_private_hosts" json:"allow_private_hosts"` // fetch loopback and internal addresses
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  10 << 20,
			AllowedOrigin:   "*",
		},
		Fetch: FetchConfig{
			Timeout: 30 * time.Second,
		},
		Logger: logger.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig loads configuration from a YAML file. JSON files parse as well.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("config error: server timeouts must be non-negative")
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'server.max_upload_bytes' must be non-negative")
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("config error: 'fetch.timeout' must be non-negative")
	}

	switch c.Logger.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'logger.format' must be json or pretty, got %q", c.Logger.Format)
	}

	if c.Analysis.DictionaryPath != "" {
		if _, err := os.Stat(c.Analysis.DictionaryPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: dictionary file not found: %s", c.Analysis.DictionaryPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.ReadTimeout == 0 {
		result.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if result.Server.WriteTimeout == 0 {
		result.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if result.Server.ShutdownTimeout == 0 {
		result.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if result.Server.MaxUploadBytes == 0 {
		result.Server.MaxUploadBytes = defaults.Server.MaxUploadBytes
	}
	if result.Server.AllowedOrigin == "" {
		result.Server.AllowedOrigin = defaults.Server.AllowedOrigin
	}

	if result.Analysis.DictionaryPath == "" {
		result.Analysis.DictionaryPath = defaults.Analysis.DictionaryPath
	}

	if result.Fetch.Timeout == 0 {
		result.Fetch.Timeout = defaults.Fetch.Timeout
	}

	if result.Logger.Level == "" {
		result.Logger.Level = defaults.Logger.Level
	}
	if result.Logger.Format == "" {
		result.Logger.Format = defaults.Logger.Format
	}
	if result.Logger.TimeFormat == "" {
		result.Logger.TimeFormat = defaults.Logger.TimeFormat
	}

	// Bool fields cannot distinguish unset from false, so CLI flags always win for them.

	return result
}
