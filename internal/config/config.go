/*
 * config.go, part of chemform.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * chemform is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

// Package config loads the chemform command configuration from a YAML file
// and CHEMFORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rmera/chemform/internal/logging"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of the environment variables read by Load.
// Nested keys map to variables like CHEMFORM_RESOLVER_API_KEY.
const envPrefix = "CHEMFORM"

// Config is the whole chemform configuration.
type Config struct {
	Log         logging.Config `mapstructure:"log"`
	Resolver    ResolverConfig `mapstructure:"resolver"`
	Library     LibraryConfig  `mapstructure:"library"`
	Output      OutputConfig   `mapstructure:"output"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
	Concurrency int            `mapstructure:"concurrency"` //formulas resolved at the same time
}

// ResolverConfig configures the external, OpenAI-compatible, resolver.
type ResolverConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"` //empty means the OpenAI API
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LibraryConfig points to a YAML file with predefined structures that replaces
// the built-in library. An empty path keeps the built-in one.
type LibraryConfig struct {
	Path string `mapstructure:"path"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"` //"json" or "xyz"
	Gzip   bool   `mapstructure:"gzip"`
}

// MetricsConfig sets a file where the metrics are written, in the Prometheus
// text format, when a command ends. Empty means no metrics.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

var defaults = map[string]interface{}{
	"log.level":         "info",
	"log.format":        "console",
	"log.output_paths":  []string{"stderr"},
	"resolver.enabled":  false,
	"resolver.base_url": "",
	"resolver.api_key":  "",
	"resolver.model":    "gpt-4o-mini",
	"resolver.timeout":  "30s",
	"library.path":      "",
	"output.format":     "json",
	"output.gzip":       false,
	"metrics.textfile":  "",
	"concurrency":       4,
}

// newViper returns a viper with the defaults set. Every key has a default,
// so every key can be overridden from the environment.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// Load reads the YAML file at path, if path is not empty, applies the
// CHEMFORM_* environment overrides and the defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration with only the defaults applied.
func Default() *Config {
	cfg := &Config{}
	if err := newViper().Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("config: bad defaults: %v", err))
	}
	return cfg
}

// Validate checks cfg for values the commands can't work with.
func (cfg *Config) Validate() error {
	var errs []error
	switch cfg.Output.Format {
	case "json", "xyz":
	default:
		errs = append(errs, fmt.Errorf("output.format must be json or xyz, not %q", cfg.Output.Format))
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, not %q", cfg.Log.Format))
	}
	if cfg.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, not %d", cfg.Concurrency))
	}
	if cfg.Resolver.Timeout < 0 {
		errs = append(errs, fmt.Errorf("resolver.timeout can't be negative"))
	}
	if cfg.Resolver.Enabled {
		if cfg.Resolver.Model == "" {
			errs = append(errs, fmt.Errorf("resolver.model is required when the resolver is enabled"))
		}
		if cfg.Resolver.APIKey == "" && cfg.Resolver.BaseURL == "" {
			errs = append(errs, fmt.Errorf("resolver.api_key or resolver.base_url is required when the resolver is enabled"))
		}
	}
	return errors.Join(errs...)
}
