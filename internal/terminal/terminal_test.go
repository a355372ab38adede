// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWidthFallsBackForNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := Width(f); got != DefaultWidth {
		t.Errorf("Width(file) = %d, want %d", got, DefaultWidth)
	}
	if got := Width(nil); got != DefaultWidth {
		t.Errorf("Width(nil) = %d, want %d", got, DefaultWidth)
	}
	if IsInteractive(f) {
		t.Error("IsInteractive(file) = true, want false")
	}
	if IsInteractive(nil) {
		t.Error("IsInteractive(nil) = true, want false")
	}
}
