// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"

	"github.com/pterm/pterm"

	apperrors "restadmin/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// Hint returns a one-line suggestion for the error's kind.
func Hint(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.Network:
		return "Check that the backend is running and base_url is correct, then retry."
	case apperrors.Parse:
		return "The backend answered with an unexpected payload; check that it is a REST admin backend."
	case apperrors.UnknownResource:
		return "Run 'restadmin resources' to see the available resources."
	default:
		return ""
	}
}

// PrintError prints a masked error and its hint with pterm styles.
func PrintError(context string, err error) {
	if err == nil {
		return
	}
	pterm.Error.Println(PresentError(context, err))
	if hint := Hint(err); hint != "" {
		pterm.Info.Println(hint)
	}
}
