// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"restadmin/cli/internal/config"
	"restadmin/cli/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `The config command prints the configuration after all layers are applied:
defaults, the config file, RESTADMIN_* environment variables and flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		source := cfg.Source
		if source == "" {
			p, err := config.Path()
			if err != nil {
				return err
			}
			source = p + " (not present)"
		}
		fmt.Fprintf(out, "# file: %s\n", source)

		shown := cfg.Map()
		shown["base_url"] = logging.Mask(cfg.BaseURL)
		b, err := yaml.Marshal(shown)
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
