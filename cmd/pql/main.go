// Package main provides the pql CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodegenix/pqlgo/internal/config"
	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/version"
)

var (
	cfgFile  string //nolint:gochecknoglobals // CLI flag variable
	basePath string //nolint:gochecknoglobals // CLI flag variable
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pql",
		Short: "PQL (Path Query Language) evaluator and document tool",
		Long:  `pql parses, queries, validates and serves documents addressed by Path Query Language expressions.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if basePath != "" {
				fileinfo.SetBasePath(basePath)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./pql.yaml)")
	rootCmd.PersistentFlags().StringVar(&basePath, "base-path", "", "base path used to relativize file paths in output")

	rootCmd.AddCommand(evalCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(pathCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(completionCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "pql %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

// loadConfig loads the CLI's configuration file and registers the
// process-wide base path, matching internal/config's documented startup
// contract (pkg/fileinfo's base path is set once at startup, here).
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if basePath != "" {
		fileinfo.SetBasePath(basePath)
	}

	return cfg, nil
}
