// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"restadmin/cli/internal/fetcher"
	"restadmin/cli/internal/query"
	"restadmin/cli/internal/render"
	"restadmin/cli/internal/terminal"
)

var (
	listFilters    []string
	listOrder      []string
	listPage       int
	listOutput     string
	listNoDefaults bool
)

var listCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "Print one page of a resource",
	Long: `The list command fetches one page of a resource listing and prints it.

Filters are passed as column=value and may be repeated. Ordering keys are
column names, prefixed with "-" for descending order; the first key is the
primary one. Configured default filters for the resource apply unless
--no-defaults is given, and --filter overrides them per column.`,
	Example: `  restadmin list users
  restadmin list users --filter country_code=US --order -created_at --page 2
  restadmin list todos --output yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := render.ParseFormat(listOutput)
		if err != nil {
			return err
		}
		q, err := buildQuery(args[0])
		if err != nil {
			return err
		}
		svc, err := newServices(cfg, logger)
		if err != nil {
			return err
		}

		req := fetcher.RequestFor(args[0], q, cfg.PageSize)
		var page *fetcher.Page
		err = withSpinner("Loading "+args[0], func() error {
			page, err = svc.fetcher.Fetch(cmd.Context(), req)
			return err
		})
		if err != nil {
			return report("Loading "+args[0], err)
		}
		return render.Page(cmd.OutOrStdout(), format, args[0], page, terminal.Width(os.Stdout))
	},
}

// buildQuery turns the list flags into the query of resource.
func buildQuery(resource string) (query.Query, error) {
	defaults := query.Filters{}
	if !listNoDefaults {
		defaults = cfg.DefaultsFor(resource)
	}
	q := query.New(defaults)

	for _, f := range listFilters {
		col, val, err := parseFilter(f)
		if err != nil {
			return q, err
		}
		q.Filters[col] = val
	}

	ordering, err := parseOrdering(listOrder)
	if err != nil {
		return q, err
	}
	q.Ordering = ordering

	if listPage < 1 {
		return q, fmt.Errorf("--page must be at least 1, got %d", listPage)
	}
	q.Page = listPage
	return q, nil
}

// parseFilter splits "column=value". The value may be empty.
func parseFilter(s string) (string, string, error) {
	col, val, ok := strings.Cut(s, "=")
	col = strings.TrimSpace(col)
	if !ok || col == "" {
		return "", "", fmt.Errorf("invalid filter %q: want column=value", s)
	}
	return col, val, nil
}

// parseOrdering validates ordering keys: non-empty and each column at most once.
func parseOrdering(keys []string) (query.Ordering, error) {
	out := query.Ordering{}
	var seen []string
	for _, key := range keys {
		key = strings.TrimSpace(key)
		col := strings.TrimPrefix(key, "-")
		if col == "" {
			return nil, fmt.Errorf("invalid ordering key %q", key)
		}
		if slices.Contains(seen, col) {
			return nil, fmt.Errorf("column %q ordered twice", col)
		}
		seen = append(seen, col)
		out = append(out, key)
	}
	return out, nil
}

func init() {
	listCmd.Flags().StringArrayVarP(&listFilters, "filter", "f", nil, "Filter as column=value (repeatable)")
	listCmd.Flags().StringArrayVarP(&listOrder, "order", "o", nil, "Ordering key, -column for descending (repeatable)")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page to fetch")
	listCmd.Flags().StringVar(&listOutput, "output", string(render.Table), "Output format: table, json or yaml")
	listCmd.Flags().BoolVar(&listNoDefaults, "no-defaults", false, "Do not apply the configured default filters")
	rootCmd.AddCommand(listCmd)
}
