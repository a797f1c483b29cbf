package main

import (
	"errors"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"selfplay-gen/internal/bench"
	"selfplay-gen/internal/config"
	"selfplay-gen/internal/logging"
	"selfplay-gen/internal/match"
	"selfplay-gen/internal/pipeline"
	"selfplay-gen/internal/prepare"
	"selfplay-gen/internal/prompt"
)

var (
	runConfigPath  string
	runSchemaPath  string
	runGames       int
	runConcurrency int
	runYes         bool
	runPrintOnly   bool
	runLogFile     string
	runTUI         bool
)

// newRunPrompter decides how interactive the run is. The TUI takes over the
// terminal before the pipeline asks its questions, so under --tui every
// prompt resolves to its default instead of reading swallowed input.
func newRunPrompter(yes, tui bool) *prompt.Prompter {
	p := prompt.New()
	p.AssumeYes = yes || tui
	return p
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full data-generation pipeline",
	Long:  "run prepares the engine, downloads the game runner and opening book, benchmarks the machine, scales the time control and launches the self-play batch.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfigPath, runSchemaPath)
		if err != nil {
			return err
		}

		logger := logging.New()
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		ctx = logging.NewContext(ctx, logger)

		runID := uuid.NewString()

		total := cfg.Match.Games
		if runGames > 0 {
			total = runGames
		}
		writer, benchW, cleanup, err := newWriters(cfg, runID, total, runPrintOnly, runTUI, runLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		prompter := newRunPrompter(runYes, runTUI)

		runnerPath := filepath.Join(cfg.Assets.Dir, cfg.Assets.RunnerName)
		pl := &pipeline.Pipeline{
			Config:      cfg,
			RunID:       runID,
			Preparer:    prepare.New(cfg.Engine.RepoURL, cfg.Engine.Branch, cfg.Engine.SourceDir, cfg.Engine.MakeDir, cfg.Engine.Binary),
			Fetcher:     pipeline.NewAssetFetcher(cfg.Assets),
			Sampler:     &bench.Sampler{EnginePath: cfg.Engine.Binary, Args: cfg.Engine.BenchArgs},
			Runner:      match.NewRunner(runnerPath, runID, writer),
			Prompter:    prompter,
			BenchWriter: benchW,
			Games:       runGames,
			Concurrency: runConcurrency,
		}

		if err := pl.Run(ctx); err != nil {
			if errors.Is(err, pipeline.ErrDeclined) {
				logger.Info("run declined, nothing started")
				return nil
			}
			return err
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "config/pipeline.yaml", "Path to pipeline configuration YAML")
	runCmd.Flags().StringVar(&runSchemaPath, "schema", "schemas/pipeline.cue", "Path to CUE schema file")
	runCmd.Flags().IntVar(&runGames, "games", 0, "Number of games to play (0 asks interactively)")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "Concurrent games (0 asks interactively)")
	runCmd.Flags().BoolVar(&runYes, "yes", false, "Assume yes on confirmation prompts")
	runCmd.Flags().BoolVar(&runPrintOnly, "print-only", false, "Print progress to STDOUT instead of writing to DB")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Path to export match progress (JSONL)")
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "Render live progress in a terminal UI (implies --yes)")
}
