package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides are the settings deployments commonly set per environment.
type envOverrides struct {
	Addr     string `env:"WORKCITY_ADDR"`
	SiteURL  string `env:"WORKCITY_SITE_URL"`
	ThemeDir string `env:"WORKCITY_THEME_DIR"`
	Debug    bool   `env:"WORKCITY_DEBUG"`
}

// ApplyEnv overlays WORKCITY_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Addr != "" {
		cfg.Server.Addr = o.Addr
	}
	if o.SiteURL != "" {
		cfg.SiteURL = o.SiteURL
	}
	if o.ThemeDir != "" {
		cfg.ThemeDir = o.ThemeDir
	}
	if o.Debug {
		cfg.Log.Debug = true
	}
	return nil
}
