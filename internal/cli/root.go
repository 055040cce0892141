// Package cli implements the arka command surface.
//
// Commands are thin orchestration: they read a snapshot from the
// store, call the pure core (match, route, ledger folds), and print.
// All policy-free computation lives in the internal packages; the CLI
// owns I/O, validation at the boundary, and exit codes.
package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arkamesh/arka/internal/config"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigFile string
	Database   string
	Format     string // "json" | "text"
	LogLevel   string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the arka CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "arka",
		Short: "arka - decentralized aid exchange",
		Long: `arka coordinates decentralized aid exchange: nodes publish needed and
offered items, the engine ranks which offers best satisfy which needs,
and an append-only trust ledger tracks each node's standing.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			level, err := logrus.ParseLevel(opts.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid loglevel %q: %w", opts.LogLevel, err)
			}
			logrus.SetLevel(level)

			if err := config.Init(opts.ConfigFile); err != nil {
				return err
			}
			if opts.Database == "" {
				opts.Database = config.DBPath()
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default is $HOME/.arka.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.LogLevel, "loglevel", "l", "info", "log level (debug, info, warn, error, fatal)")

	// Add subcommands
	cmd.AddCommand(NewNeedCommand(opts))
	cmd.AddCommand(NewOfferCommand(opts))
	cmd.AddCommand(NewNodeCommand(opts))
	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewTrustCommand(opts))
	cmd.AddCommand(NewRouteCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
