// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"

	// DefaultBaseURL is the backend used when neither config nor flags name one.
	// Set it at build time with -ldflags "-X restadmin/cli/cmd.DefaultBaseURL=https://admin.example.com".
	DefaultBaseURL = "http://localhost:5000"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "restadmin %s\ndefault backend %s\n", Version, DefaultBaseURL)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
