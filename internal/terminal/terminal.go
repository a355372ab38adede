// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal answers questions about the attached terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is assumed when the width cannot be determined.
const DefaultWidth = 80

// Width returns the column count of the terminal behind f, or DefaultWidth
// when f is not a terminal.
func Width(f *os.File) int {
	if f == nil {
		return DefaultWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
