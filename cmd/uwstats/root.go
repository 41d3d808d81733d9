// Package main provides the entry point for the uwstats CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for uwstats.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uwstats",
		Short: "Forum thread miner and statistics tool for uwmc.de",
		Long: `uwstats downloads every page of a uwmc.de forum thread into local
HTML snapshots, extracts the individual messages, and reports per-author
statistics about compliance with the forum's posting rules.

Mining and reporting are separate steps: "mine" persists page snapshots,
"stats" parses them and renders the compliance table.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewMineCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
