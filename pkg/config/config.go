// Package config loads server configuration from defaults, an optional
// YAML file and MAPMEASURE_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/NERVsystems/mapmeasure/pkg/version"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	Nominatim NominatimConfig `mapstructure:"nominatim"`
}

type ServerConfig struct {
	Name string `mapstructure:"name"`
}

// SessionsConfig bounds the number of live measurement sessions.
type SessionsConfig struct {
	Max int `mapstructure:"max"`
}

type NominatimConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	RPS       float64       `mapstructure:"rps"`
	Burst     int           `mapstructure:"burst"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// Load reads configuration. path names an explicit config file; when
// empty, mapmeasure.yaml is looked up in the working directory and in
// $HOME/.config/mapmeasure and may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.name", "mapmeasure")
	v.SetDefault("sessions.max", 64)
	v.SetDefault("nominatim.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("nominatim.user_agent", version.Get().UserAgent())
	v.SetDefault("nominatim.rps", 1.0)
	v.SetDefault("nominatim.burst", 1)
	v.SetDefault("nominatim.cache_ttl", 5*time.Minute)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("mapmeasure")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mapmeasure")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// MAPMEASURE_NOMINATIM_RPS → nominatim.rps
	v.SetEnvPrefix("MAPMEASURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Name == "" {
		errs = append(errs, "server.name is required")
	}
	if c.Sessions.Max <= 0 {
		errs = append(errs, fmt.Sprintf("sessions.max must be positive, got %d", c.Sessions.Max))
	}
	if c.Nominatim.BaseURL == "" {
		errs = append(errs, "nominatim.base_url is required")
	}
	if c.Nominatim.UserAgent == "" {
		errs = append(errs, "nominatim.user_agent is required")
	}
	if c.Nominatim.RPS <= 0 {
		errs = append(errs, fmt.Sprintf("nominatim.rps must be positive, got %g", c.Nominatim.RPS))
	}
	if c.Nominatim.Burst <= 0 {
		errs = append(errs, fmt.Sprintf("nominatim.burst must be positive, got %d", c.Nominatim.Burst))
	}
	if c.Nominatim.CacheTTL <= 0 {
		errs = append(errs, "nominatim.cache_ttl must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
