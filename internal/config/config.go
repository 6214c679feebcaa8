// File: internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Document() DocumentConfig
	Replay() ReplayConfig

	// Document Setters
	SetDocumentBaseURL(string)
	SetDocumentScale(float64)

	// Replay Setters
	SetReplayConcurrency(int)
	SetReplayOutputFormat(string)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	DocumentCfg DocumentConfig `mapstructure:"document" yaml:"document"`
	ReplayCfg   ReplayConfig   `mapstructure:"replay" yaml:"replay"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig     { return c.LoggerCfg }
func (c *Config) Document() DocumentConfig { return c.DocumentCfg }
func (c *Config) Replay() ReplayConfig     { return c.ReplayCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetDocumentBaseURL(u string) { c.DocumentCfg.BaseURL = u }
func (c *Config) SetDocumentScale(s float64)  { c.DocumentCfg.Scale = s }

func (c *Config) SetReplayConcurrency(n int)     { c.ReplayCfg.Concurrency = n }
func (c *Config) SetReplayOutputFormat(f string) { c.ReplayCfg.OutputFormat = f }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// DocumentConfig describes the surface documents are presented on.
type DocumentConfig struct {
	ViewportWidth  int     `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int     `mapstructure:"viewport_height" yaml:"viewport_height"`
	Scale          float64 `mapstructure:"scale" yaml:"scale"`
	// ColorScheme is "light" or "dark".
	ColorScheme string `mapstructure:"color_scheme" yaml:"color_scheme"`
	// BaseURL resolves relative links. Empty means only absolute links navigate.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// ReplayConfig holds settings for the scenario replay harness.
type ReplayConfig struct {
	Concurrency  int    `mapstructure:"concurrency" yaml:"concurrency"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
}

// NewDefaultConfig creates a new configuration with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults registers every default value on the given viper instance.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "lattice")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Document --
	v.SetDefault("document.viewport_width", 800)
	v.SetDefault("document.viewport_height", 600)
	v.SetDefault("document.scale", 1.0)
	v.SetDefault("document.color_scheme", "light")
	v.SetDefault("document.base_url", "")

	// -- Replay --
	v.SetDefault("replay.concurrency", 4)
	v.SetDefault("replay.output_format", "text")
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Binding is explicit so that nested keys resolve even without a config file.
	v.BindEnv("document.base_url", "LATTICE_DOCUMENT_BASE_URL")
	v.BindEnv("logger.level", "LATTICE_LOGGER_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.DocumentCfg.Validate(); err != nil {
		return fmt.Errorf("document configuration invalid: %w", err)
	}
	if err := c.ReplayCfg.Validate(); err != nil {
		return fmt.Errorf("replay configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the document settings.
func (d *DocumentConfig) Validate() error {
	if d.ViewportWidth <= 0 || d.ViewportHeight <= 0 {
		return fmt.Errorf("document.viewport_width and document.viewport_height must be positive integers")
	}
	if d.Scale < 0 {
		return fmt.Errorf("document.scale must not be negative")
	}
	switch strings.ToLower(d.ColorScheme) {
	case "", "light", "dark":
	default:
		return fmt.Errorf("document.color_scheme must be 'light' or 'dark', got %q", d.ColorScheme)
	}
	if d.BaseURL != "" {
		u, err := url.Parse(d.BaseURL)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("document.base_url must be an absolute URL, got %q", d.BaseURL)
		}
	}
	return nil
}

// Validate checks the replay settings.
func (r *ReplayConfig) Validate() error {
	if r.Concurrency <= 0 {
		return fmt.Errorf("replay.concurrency must be a positive integer")
	}
	switch r.OutputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("replay.output_format must be 'text' or 'json', got %q", r.OutputFormat)
	}
	return nil
}
