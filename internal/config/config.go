// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads the CLI configuration.
//
// Values are layered, later sources winning: built-in defaults, the JSON file
// in the XDG config dir (or an explicit path), RESTADMIN_* environment
// variables, and finally flags the user actually set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"restadmin/cli/internal/catalog"
	"restadmin/cli/internal/query"
	"restadmin/cli/internal/xdg"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RESTADMIN_"

// keyDelim separates nested config keys. Resource and column names in
// default_filters may contain dots, so the path delimiter is a control character.
const keyDelim = "\x1f"

// FileName is the config file name inside the XDG config dir.
const FileName = "config.json"

// Config holds the effective CLI settings.
type Config struct {
	BaseURL       string        `koanf:"base_url" json:"base_url" yaml:"base_url"`
	DiscoveryPath string        `koanf:"discovery_path" json:"discovery_path" yaml:"discovery_path"`
	LogLevel      string        `koanf:"log_level" json:"log_level" yaml:"log_level"`
	Timeout       time.Duration `koanf:"timeout" json:"timeout" yaml:"timeout"`
	PageSize      int           `koanf:"page_size" json:"page_size" yaml:"page_size"`
	RateLimit     float64       `koanf:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
	RateBurst     int           `koanf:"rate_burst" json:"rate_burst" yaml:"rate_burst"`

	// DefaultFilters maps a resource name to the filters it starts with.
	DefaultFilters map[string]map[string]string `koanf:"default_filters" json:"default_filters" yaml:"default_filters"`

	// Source is the config file that was read, empty when none was.
	Source string `koanf:"-" json:"-" yaml:"-"`
}

// Options controls where Load reads from.
type Options struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// BaseURL is the build-time default backend URL.
	BaseURL string
	// Overrides are flag values keyed like the file, applied last.
	Overrides map[string]any
}

// Defaults returns the built-in settings.
func Defaults(baseURL string) map[string]any {
	return map[string]any{
		"base_url":       baseURL,
		"discovery_path": catalog.DefaultDiscoveryPath,
		"log_level":      "info",
		"timeout":        "30s",
		"page_size":      0,
		"rate_limit":     0.0,
		"rate_burst":     1,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := xdg.ConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load builds the effective configuration. A missing default config file is
// not an error; a missing explicit one is.
func Load(opts Options) (Config, error) {
	var c Config
	k := koanf.New(keyDelim)

	if err := k.Load(confmap.Provider(Defaults(opts.BaseURL), keyDelim), nil); err != nil {
		return c, fmt.Errorf("load defaults: %w", err)
	}

	source, err := locate(opts.Path)
	if err != nil {
		return c, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), json.Parser()); err != nil {
			return c, fmt.Errorf("read config %s: %w", source, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, keyDelim, envKey), nil); err != nil {
		return c, fmt.Errorf("load environment: %w", err)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, keyDelim), nil); err != nil {
			return c, fmt.Errorf("load flags: %w", err)
		}
	}

	if err := k.UnmarshalWithConf("", &c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	c.Source = source
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	return c, c.Validate()
}

// locate returns the file to read, or "" when the default file does not exist.
func locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	p, err := Path()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return p, nil
}

// envKey maps RESTADMIN_PAGE_SIZE to page_size.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// Validate rejects settings no command can work with.
func (c Config) Validate() error {
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	case c.PageSize < 0:
		return fmt.Errorf("page_size must not be negative, got %d", c.PageSize)
	case c.RateLimit < 0:
		return fmt.Errorf("rate_limit must not be negative, got %g", c.RateLimit)
	case c.RateLimit > 0 && c.RateBurst < 1:
		return fmt.Errorf("rate_burst must be at least 1 when rate_limit is set, got %d", c.RateBurst)
	}
	return nil
}

// RequireBaseURL reports an error when no backend URL has been configured.
func (c Config) RequireBaseURL() error {
	if c.BaseURL == "" {
		return fmt.Errorf("no backend URL configured: pass --base-url or set %sBASE_URL", EnvPrefix)
	}
	return nil
}

// DefaultsFor returns the starting filters of resource. The result is a fresh map.
func (c Config) DefaultsFor(resource string) query.Filters {
	return query.Filters(c.DefaultFilters[resource]).Clone()
}

// Map returns the settings keyed like the config file, with the timeout as a
// duration string.
func (c Config) Map() map[string]any {
	filters := map[string]map[string]string{}
	for resource, f := range c.DefaultFilters {
		filters[resource] = query.Filters(f).Clone()
	}
	return map[string]any{
		"base_url":        c.BaseURL,
		"discovery_path":  c.DiscoveryPath,
		"log_level":       c.LogLevel,
		"timeout":         c.Timeout.String(),
		"page_size":       c.PageSize,
		"rate_limit":      c.RateLimit,
		"rate_burst":      c.RateBurst,
		"default_filters": filters,
	}
}
