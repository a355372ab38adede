// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg provides helpers to resolve XDG Base Directory paths for restadmin.
//
// The package falls back to the traditional location when XDG_CONFIG_HOME is
// not set.
package xdg

import (
	"os"
	"path/filepath"
)

// App is the directory name used under the XDG base directories.
const App = "restadmin"

// ConfigHome returns the XDG config directory for restadmin without creating it.
// It falls back to ~/.config/restadmin when XDG_CONFIG_HOME is unset.
func ConfigHome() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, App), nil
}

// ConfigDir returns the XDG config directory for restadmin.
// The directory is created with private permissions (0700) if missing.
func ConfigDir() (string, error) {
	dir, err := ConfigHome()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
