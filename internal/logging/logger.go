// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

var levels = map[string]pterm.LogLevel{
	"trace":    pterm.LogLevelTrace,
	"debug":    pterm.LogLevelDebug,
	"info":     pterm.LogLevelInfo,
	"warn":     pterm.LogLevelWarn,
	"warning":  pterm.LogLevelWarn,
	"error":    pterm.LogLevelError,
	"disabled": pterm.LogLevelDisabled,
	"off":      pterm.LogLevelDisabled,
}

// ParseLevel maps a config level name to a pterm level.
func ParseLevel(name string) (pterm.LogLevel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return pterm.LogLevelInfo, nil
	}
	lvl, ok := levels[name]
	if !ok {
		return pterm.LogLevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return lvl, nil
}

// New creates a structured logger writing to w at the given level.
func New(level string, w io.Writer) (*pterm.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return pterm.DefaultLogger.WithLevel(lvl).WithWriter(w), nil
}

// Discard returns a logger that drops everything. Used by tests and the TUI.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled).WithWriter(io.Discard)
}
