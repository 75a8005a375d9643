// Command sqlinst-go is the operator CLI for the native user-instance API.
// It is a thin veneer over pkg/sqlinst: every subcommand forwards its
// arguments to one API operation and prints the result.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlinst/sqlinst-go/internal/cliconf"
	"github.com/sqlinst/sqlinst-go/pkg/sqlinst"
)

var (
	cfgFile         string
	overrideVersion string

	api *sqlinst.API
)

var rootCmd = &cobra.Command{
	Use:           "sqlinst-go",
	Short:         "Manage native user-instance API instances",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = cliconf.DefaultPath()
		}
		cfg, err := cliconf.Load(path)
		if err != nil {
			return err
		}
		if overrideVersion != "" {
			cfg.OverrideVersion = overrideVersion
		}

		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		}))
		api = sqlinst.New(
			sqlinst.WithLogger(log),
			sqlinst.WithOverrideVersion(cfg.OverrideVersion),
			sqlinst.WithLanguageID(cfg.LanguageID),
		)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if api != nil {
			return api.Close()
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.sqlinst.yaml)")
	rootCmd.PersistentFlags().StringVar(&overrideVersion, "api-version", "", "pin the native API version")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
