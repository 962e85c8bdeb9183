// Package main provides the entry point for the mens CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version          = "0.1.0-dev"
	globalConfigPath string
	globalVerbose    bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mens",
		Short:         "Markdown notes that sync between devices",
		Long:          "mens keeps short markdown notes in a local YAML document and syncs them with a remote (GitHub gist, S3 bucket or shared SQLite file).",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/mens/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&globalVerbose, "verbose", false, "Mirror warnings to stderr")

	rootCmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newModifyCmd(),
		newGetCmd(),
		newListCmd(),
		newSearchCmd(),
		newInfoCmd(),
		newConfigCmd(),
		newClearCmd(),
		newSyncCmd(),
		newWatchCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	return rootCmd
}
