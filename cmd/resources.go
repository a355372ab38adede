// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"restadmin/cli/internal/catalog"
	"restadmin/cli/internal/render"
)

var resourcesCmd = &cobra.Command{
	Use:     "resources",
	Aliases: []string{"ls"},
	Short:   "List the resources the backend exposes",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices(cfg, logger)
		if err != nil {
			return err
		}

		var items []catalog.Descriptor
		err = withSpinner("Discovering resources", func() error {
			items, err = svc.catalog.List(cmd.Context())
			return err
		})
		if err != nil {
			return report("Discovering resources", err)
		}
		if len(items) == 0 {
			cmd.PrintErrln("The backend exposes no resources.")
			return nil
		}
		return render.Resources(cmd.OutOrStdout(), items)
	},
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
}
