package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"selfplay-gen/internal/report"
)

var (
	reportInput string
	reportPGN   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize a finished run from its progress log",
	Long:  "report aggregates the JSONL progress log of a run into score, draw rate and throughput figures, optionally cross-checking the produced PGN dataset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportInput == "" {
			return fmt.Errorf("input file required")
		}
		summary, err := report.FromLogFile(reportInput)
		if err != nil {
			return err
		}
		fmt.Println(summary.Render())

		if reportPGN == "" {
			return nil
		}
		stats, err := report.InspectPGN(reportPGN)
		if err != nil {
			return err
		}
		fmt.Printf("\ndataset: %d games, %d moves, %.1f plies/game\n", stats.Games, stats.Moves, stats.AvgLength)
		if stats.Games != summary.Games {
			fmt.Printf("warning: dataset holds %d games but the log recorded %d\n", stats.Games, summary.Games)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportInput, "input", "", "Path to match progress log (JSONL)")
	reportCmd.Flags().StringVar(&reportPGN, "pgn", "", "Path to the PGN dataset to cross-check")
	reportCmd.MarkFlagRequired("input")
}
