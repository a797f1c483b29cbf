package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "selfplay-gen",
	Short: "Self-play dataset generation toolkit",
	Long:  "selfplay-gen builds a chess engine from source, calibrates a time control against the machine it runs on and launches a self-play batch producing a PGN dataset.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(reportCmd)
}
