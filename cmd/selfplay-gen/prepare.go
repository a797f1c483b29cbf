package main

import (
	"github.com/spf13/cobra"

	"selfplay-gen/internal/book"
	"selfplay-gen/internal/config"
	"selfplay-gen/internal/logging"
	"selfplay-gen/internal/pipeline"
	"selfplay-gen/internal/prepare"
)

var (
	prepConfigPath string
	prepSchemaPath string
	prepSkipAssets bool
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build the engine and download the run dependencies",
	Long:  "prepare clones or updates the engine source, builds it and downloads the game runner and opening book without starting a match.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(prepConfigPath, prepSchemaPath)
		if err != nil {
			return err
		}

		logger := logging.New()
		ctx := logging.NewContext(cmd.Context(), logger)

		p := prepare.New(cfg.Engine.RepoURL, cfg.Engine.Branch, cfg.Engine.SourceDir, cfg.Engine.MakeDir, cfg.Engine.Binary)
		if err := p.Run(ctx); err != nil {
			return err
		}
		logger.Info("engine ready", "binary", cfg.Engine.Binary)

		if prepSkipAssets {
			return nil
		}
		assets, err := pipeline.NewAssetFetcher(cfg.Assets).Run(ctx)
		if err != nil {
			return err
		}
		info, err := book.Inspect(assets.BookPath)
		if err != nil {
			return err
		}
		logger.Info("assets ready", "runner", assets.RunnerPath, "book", info.Path, "positions", info.Positions)
		return nil
	},
}

func init() {
	prepareCmd.Flags().StringVar(&prepConfigPath, "config", "config/pipeline.yaml", "Path to pipeline configuration YAML")
	prepareCmd.Flags().StringVar(&prepSchemaPath, "schema", "schemas/pipeline.cue", "Path to CUE schema file")
	prepareCmd.Flags().BoolVar(&prepSkipAssets, "skip-assets", false, "Build the engine only, skip downloads")
}
