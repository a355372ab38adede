// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"restadmin/cli/internal/logging"
	"restadmin/cli/internal/terminal"
	"restadmin/cli/internal/tui"
	"restadmin/cli/internal/view"
)

var browseCmd = &cobra.Command{
	Use:   "browse [resource]",
	Short: "Browse resources interactively",
	Long: `The browse command opens an interactive browser. Without an argument it
starts at the resource index; with one it opens that resource directly.

Inside a listing: arrows pick a column, s/S sort by it ascending/descending,
f edits filters, n/p and 1-9 change pages, r reloads and esc returns to the index.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !terminal.IsInteractive(os.Stdout) {
			return fmt.Errorf("browse needs an interactive terminal; use 'restadmin list' instead")
		}
		// Log output would corrupt the alternate screen.
		log := logging.Discard()
		svc, err := newServices(cfg, log)
		if err != nil {
			return err
		}

		initial := ""
		if len(args) == 1 {
			initial = args[0]
		}
		coord := view.New(svc.fetcher,
			view.WithDefaults(cfg.DefaultsFor),
			view.WithPageSize(cfg.PageSize),
			view.WithLogger(log),
		)
		model := tui.New(cmd.Context(), svc.catalog, coord, initial)
		_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
