package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/mens/internal/infrastructure/config"
)

type configFlags struct {
	smart bool
}

func newConfigCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get or set a config value",
		Long: `Prints the value of a dotted config key, or sets it when a value is given.

Examples:
  mens config remote.kind
  mens config remote.s3.bucket my-notes
  mens config log.max_backups 3 --smart`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.smart, "smart", "s", false, "Store true/false as booleans and numbers as numbers")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string, flags configFlags) error {
	store, err := openConfigStore()
	if err != nil {
		return err
	}

	key := args[0]
	if len(args) == 1 {
		fmt.Fprintln(cmd.OutOrStdout(), store.Get(key))
		return nil
	}

	var value any = args[1]
	if flags.smart {
		value = config.ParseSmartValue(args[1])
	}

	if err := store.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
	return nil
}
