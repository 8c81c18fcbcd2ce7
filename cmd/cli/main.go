// Package main implements the sitesearch CLI for querying a site index and
// exercising the search widget against a page from the command line.
package main

import (
	"os"

	"github.com/dsjohal14/sitesearch/internal/libs/config"
	"github.com/dsjohal14/sitesearch/internal/libs/obs"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "sitesearch",
		Short:        "Static site search CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel == "" {
				logLevel = cfg.LogLevel
			}
			obs.Setup(obs.Options{
				Level:  logLevel,
				Pretty: os.Getenv("ENV") == "dev",
				Out:    cmd.ErrOrStderr(),
			})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (default from LOG_LEVEL)")

	root.AddCommand(newQueryCommand(), newSimulateCommand())
	return root
}
