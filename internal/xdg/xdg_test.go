// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package xdg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigHomeUsesXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	got, err := ConfigHome()
	if err != nil {
		t.Fatalf("ConfigHome() error: %v", err)
	}
	if want := filepath.Join(base, App); got != want {
		t.Errorf("ConfigHome() = %q, want %q", got, want)
	}
	if _, err := os.Stat(got); !os.IsNotExist(err) {
		t.Errorf("ConfigHome() must not create the directory, stat err = %v", err)
	}
}

func TestConfigDirCreatesPrivateDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat %s: %v", dir, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", dir)
	}
}

func TestConfigHomeFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)

	got, err := ConfigHome()
	if err != nil {
		t.Fatalf("ConfigHome() error: %v", err)
	}
	if want := filepath.Join(home, ".config", App); got != want {
		t.Errorf("ConfigHome() = %q, want %q", got, want)
	}
}
