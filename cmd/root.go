// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface of restadmin.
// It wires configuration, logging and the backend client into the cobra
// commands that list and browse the resources of a REST admin backend.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"restadmin/cli/internal/backend"
	"restadmin/cli/internal/catalog"
	"restadmin/cli/internal/config"
	apperrors "restadmin/cli/internal/errors"
	"restadmin/cli/internal/fetcher"
	"restadmin/cli/internal/httperrors"
	"restadmin/cli/internal/logging"
)

var (
	showVersion  bool
	flagBaseURL  string
	flagConfig   string
	flagLogLevel string
	flagPageSize int

	// cfg and logger are set by the root PersistentPreRunE.
	cfg    config.Config
	logger = logging.Discard()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "restadmin",
	Short: "Browse the resources of a REST admin backend",
	Long: `restadmin discovers the resources a REST admin backend exposes and shows
their records as paginated, filterable and sortable tables.

Use "restadmin list" for scripted output and "restadmin browse" for the
interactive browser.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", "", "Backend base URL (default from config or build)")
	pf.StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/restadmin/config.json)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	pf.IntVar(&flagPageSize, "page-size", 0, "Rows per page requested from the backend (0 = backend default)")
}

// setup loads the configuration and the logger for every command.
func setup(cmd *cobra.Command, _ []string) error {
	if showVersion || cmd.Name() == "version" {
		return nil
	}
	c, err := config.Load(config.Options{
		Path:      flagConfig,
		BaseURL:   DefaultBaseURL,
		Overrides: flagOverrides(cmd),
	})
	if err != nil {
		return err
	}
	l, err := logging.New(c.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	logger.Debug("configuration loaded", logger.Args("source", c.Source, "base_url", logging.Mask(c.BaseURL)))
	return nil
}

// flagOverrides returns the config keys of the flags the user actually set.
func flagOverrides(cmd *cobra.Command) map[string]any {
	out := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		out["base_url"] = flagBaseURL
	}
	if flags.Changed("log-level") {
		out["log_level"] = flagLogLevel
	}
	if flags.Changed("page-size") {
		out["page_size"] = flagPageSize
	}
	return out
}

// services are the backend-facing components shared by the commands.
type services struct {
	client  *backend.Client
	catalog *catalog.Catalog
	fetcher *fetcher.Fetcher
}

func newServices(c config.Config, log *pterm.Logger) (*services, error) {
	if err := c.RequireBaseURL(); err != nil {
		return nil, err
	}
	opts := []backend.Option{
		backend.WithTimeout(c.Timeout),
		backend.WithLogger(log),
		backend.WithUserAgent("restadmin/" + Version),
	}
	if c.RateLimit > 0 {
		opts = append(opts, backend.WithRateLimit(c.RateLimit, c.RateBurst))
	}
	client := backend.New(c.BaseURL, opts...)
	cat := catalog.New(client, catalog.NewCache(),
		catalog.WithDiscoveryPath(c.DiscoveryPath),
		catalog.WithLogger(log),
	)
	return &services{client: client, catalog: cat, fetcher: fetcher.New(cat, client, log)}, nil
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// report prints err with advice matching its kind and marks it as shown.
func report(action string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsKind(err, apperrors.Network) {
		httperrors.FormatNetworkError(err, action, httperrors.ExtractHostFromURL(cfg.BaseURL))
	} else {
		logging.PrintError(action, err)
	}
	return &reportedError{err: err}
}
