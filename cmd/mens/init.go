package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/mens/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize mens",
		Long:  "Writes the default config file and creates an empty local document.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	result, err := handlers.NewInitHandler().Handle(cmd.Context(), path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	fmt.Fprintf(out, "Created %s\n", result.DocumentPath)
	fmt.Fprintf(out, "Remote: %s (set remote.token, then run 'mens sync')\n", result.RemoteKind)
	return nil
}
