package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"selfplay-gen/internal/bench"
	"selfplay-gen/internal/config"
	"selfplay-gen/internal/scale"
)

var (
	benchConfigPath  string
	benchSchemaPath  string
	benchConcurrency int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the engine and print the scaled time control",
	Long:  "bench runs the engine's built-in benchmark, reads its speed and prints the time control it maps to on this machine.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(benchConfigPath, benchSchemaPath)
		if err != nil {
			return err
		}

		sampler := &bench.Sampler{EnginePath: cfg.Engine.Binary, Args: cfg.Engine.BenchArgs}
		if benchConcurrency > 1 {
			sampler.SpawnLoad(benchConcurrency - 1)
		}
		nps, err := sampler.Sample(cmd.Context())
		if err != nil {
			return err
		}

		reference := scale.ReferenceProfile{
			NPS:        cfg.Reference.NPS,
			BaseTimeMs: cfg.Reference.BaseTimeMs,
			IncMs:      cfg.Reference.IncMs,
		}
		tc, err := reference.Scale(nps)
		if err != nil {
			return err
		}
		est := scale.EstimateThroughput(tc)

		fmt.Printf("measured       %d nps\n", nps)
		fmt.Printf("reference      %d nps at %s\n", reference.NPS, scale.TimeControl{BaseMs: reference.BaseTimeMs, IncMs: reference.IncMs}.String())
		fmt.Printf("time control   %s\n", tc.String())
		fmt.Printf("throughput     %d games/hour per worker\n", est.GamesPerHour)
		return nil
	},
}

func init() {
	benchCmd.Flags().StringVar(&benchConfigPath, "config", "config/pipeline.yaml", "Path to pipeline configuration YAML")
	benchCmd.Flags().StringVar(&benchSchemaPath, "schema", "schemas/pipeline.cue", "Path to CUE schema file")
	benchCmd.Flags().IntVar(&benchConcurrency, "concurrency", 1, "Sample under the load of N-1 background benchmark processes")
}
