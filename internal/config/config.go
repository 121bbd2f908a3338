// Package config provides configuration types, defaults, and persistence for workcity.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patii/workcity/internal/log"
	"github.com/patii/workcity/internal/theme"
)

// Config holds all configuration options for workcity.
type Config struct {
	// ThemeDir is the child theme directory holding style.css.
	// Empty serves and checks the stylesheet embedded in the binary.
	ThemeDir string `mapstructure:"theme_dir"`
	// SiteURL is the public origin pages are served from, without trailing slash.
	SiteURL string `mapstructure:"site_url"`
	// ParentVersion is the ver query parameter of the parent stylesheet.
	ParentVersion string        `mapstructure:"parent_version"`
	Server        ServerConfig  `mapstructure:"server"`
	Cache         CacheConfig   `mapstructure:"cache"`
	Watch         WatchConfig   `mapstructure:"watch"`
	Tracing       TracingConfig `mapstructure:"tracing"`
	Log           LogConfig     `mapstructure:"log"`
}

// ServerConfig holds the demo HTTP server options.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig controls caching of rendered page heads.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// WatchConfig controls reloading when theme files change.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // "none", "stdout", or "otlp"
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
	ServiceName  string  `mapstructure:"service_name"`
}

// LogConfig holds debug log options.
type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		SiteURL:       "http://localhost:8080",
		ParentVersion: "4.8.0",
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 250 * time.Millisecond,
		},
		Tracing: TracingConfig{
			Exporter:     "none",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
			ServiceName:  "workcity",
		},
		Log: LogConfig{
			File:  "debug.log",
			Level: "debug",
		},
	}
}

// StylesheetDirURI returns the public URI of the child theme directory.
func (c Config) StylesheetDirURI() string {
	return themeURI(c.SiteURL, theme.Slug)
}

// TemplateDirURI returns the public URI of the parent theme directory.
func (c Config) TemplateDirURI() string {
	return themeURI(c.SiteURL, theme.ParentSlug)
}

// StylesheetPath returns the URL path the child stylesheet is served at.
func (c Config) StylesheetPath() string {
	return "/wp-content/themes/" + theme.Slug + "/" + theme.Stylesheet
}

func themeURI(siteURL, slug string) string {
	return strings.TrimRight(siteURL, "/") + "/wp-content/themes/" + slug
}

// Validate checks the configuration for errors.
func Validate(c Config) error {
	if c.SiteURL == "" {
		return fmt.Errorf("site_url is required")
	}
	u, err := url.Parse(c.SiteURL)
	if err != nil {
		return fmt.Errorf("site_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("site_url must be an http or https URL, got %q", c.SiteURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("site_url must not have a query or fragment, got %q", c.SiteURL)
	}
	if c.ThemeDir != "" {
		info, err := os.Stat(c.ThemeDir)
		if err != nil {
			return fmt.Errorf("theme_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("theme_dir %q is not a directory", c.ThemeDir)
		}
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	switch tracing.Exporter {
	case "", "none", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
	}

	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# workcity configuration

# Child theme directory containing style.css (default: stylesheet built into the binary)
# theme_dir: ./wp-content/themes/workcity

# Public origin used to build stylesheet URIs
site_url: http://localhost:8080

# ver parameter of the parent (Astra) stylesheet
parent_version: 4.8.0

server:
  addr: ":8080"
  shutdown_timeout: 5s

# Rendered <head> cache
cache:
  enabled: true
  ttl: 10m

# Drop cached output when style.css changes on disk
watch:
  enabled: true
  debounce: 250ms

# tracing:
#   enabled: true
#   exporter: otlp           # none, stdout, otlp
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

log:
  debug: false
  file: debug.log
  level: debug
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
