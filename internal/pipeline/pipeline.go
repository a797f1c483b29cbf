// Pipeline orchestration: prepare, fetch, benchmark, scale, run
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"selfplay-gen/internal/book"
	"selfplay-gen/internal/config"
	"selfplay-gen/internal/logging"
	"selfplay-gen/internal/match"
	"selfplay-gen/internal/scale"
)

// ErrDeclined reports a clean operator abort; callers treat it as success.
var ErrDeclined = errors.New("run declined by operator")

// Preparer makes the engine source present, current and built.
type Preparer interface {
	Run(ctx context.Context) error
}

// Assets are the resolved paths of the downloaded run dependencies.
type Assets struct {
	RunnerPath string
	BookPath   string
}

// Fetcher downloads the game runner and the opening book.
type Fetcher interface {
	Run(ctx context.Context) (Assets, error)
}

// Sampler benchmarks the engine, optionally under synthetic load.
type Sampler interface {
	Sample(ctx context.Context) (int64, error)
	SpawnLoad(n int)
}

// MatchRunner launches the self-play batch.
type MatchRunner interface {
	Run(ctx context.Context, p match.Params) error
}

// Prompter asks the operator for run parameters.
type Prompter interface {
	Int(label string, def int) (int, error)
	Confirm(label string) (bool, error)
}

// Pipeline sequences one data-generation run. Every step is fail-fast:
// the first error aborts the whole run.
type Pipeline struct {
	Config   *config.Config
	RunID    string
	Preparer Preparer
	Fetcher  Fetcher
	Sampler  Sampler
	Runner   MatchRunner
	Prompter Prompter

	// BenchWriter, when set, records the benchmark sample the run was
	// scaled from.
	BenchWriter match.BenchWriter

	// DetectedCores defaults to runtime.NumCPU.
	DetectedCores int

	// Games and Concurrency preset the prompts; zero means ask.
	Games       int
	Concurrency int
}

func (p *Pipeline) cores() int {
	if p.DetectedCores > 0 {
		return p.DetectedCores
	}
	return runtime.NumCPU()
}

// Run executes the pipeline from source preparation to the finished match.
func (p *Pipeline) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)

	log.Info("preparing engine source", "repo", p.Config.Engine.RepoURL)
	if err := p.Preparer.Run(ctx); err != nil {
		return err
	}

	assets, err := p.Fetcher.Run(ctx)
	if err != nil {
		return err
	}
	bookInfo, err := book.Inspect(assets.BookPath)
	if err != nil {
		return err
	}
	log.Info("opening book ready", "path", bookInfo.Path, "format", bookInfo.Format, "positions", bookInfo.Positions)

	concurrency, err := p.askConcurrency()
	if err != nil {
		return err
	}

	if concurrency > 1 {
		log.Info("spawning warm-up load", "processes", concurrency-1)
		p.Sampler.SpawnLoad(concurrency - 1)
	}
	log.Info("benchmarking engine")
	nps, err := p.Sampler.Sample(ctx)
	if err != nil {
		return err
	}
	log.Info("benchmark complete", "nps", nps)

	reference := scale.ReferenceProfile{
		NPS:        p.Config.Reference.NPS,
		BaseTimeMs: p.Config.Reference.BaseTimeMs,
		IncMs:      p.Config.Reference.IncMs,
	}
	tc, err := reference.Scale(nps)
	if err != nil {
		return err
	}
	est := scale.EstimateThroughput(tc)
	fmt.Println(renderPlan(p.RunID, nps, tc, est, concurrency))

	if p.BenchWriter != nil {
		sample := match.BenchSample{RunID: p.RunID, NPS: nps, Concurrency: concurrency, Timestamp: time.Now()}
		if err := p.BenchWriter.WriteBench(sample); err != nil {
			log.Warn("recording benchmark sample", "err", err)
		}
	}

	games := p.Games
	if games == 0 {
		games, err = p.Prompter.Int("Number of games", p.Config.Match.Games)
		if err != nil {
			return err
		}
	}
	if games < 1 {
		return fmt.Errorf("game count %d, want >= 1", games)
	}

	params := match.Params{
		EngineCmd:   p.Config.Engine.Binary,
		EngineName:  "selfplay",
		Options:     p.Config.Engine.Options,
		TimeControl: tc,
		Games:       games,
		Concurrency: concurrency,
		BookPath:    assets.BookPath,
		BookFormat:  bookInfo.Format,
		BookOrder:   p.Config.Match.BookOrder,
		Adjudication: match.Adjudication{
			DrawMoveNumber: p.Config.Match.DrawMoveNumber,
			DrawMoveCount:  p.Config.Match.DrawMoveCount,
			DrawScore:      p.Config.Match.DrawScore,
			ResignCount:    p.Config.Match.ResignCount,
			ResignScore:    p.Config.Match.ResignScore,
		},
		PGNOut: p.Config.Match.PGNOut,
	}
	log.Info("starting match", "games", games, "concurrency", concurrency, "tc", tc.String(), "pgn", params.PGNOut)
	if err := p.Runner.Run(ctx, params); err != nil {
		return err
	}
	log.Info("run finished", "run_id", p.RunID, "dataset", params.PGNOut)
	return nil
}

// askConcurrency validates the requested game concurrency against the
// detected core count, asking for confirmation on oversubscription.
func (p *Pipeline) askConcurrency() (int, error) {
	cores := p.cores()
	def := cores - 1
	if def < 1 {
		def = 1
	}

	concurrency := p.Concurrency
	if concurrency == 0 {
		var err error
		concurrency, err = p.Prompter.Int("Concurrent games", def)
		if err != nil {
			return 0, err
		}
	}
	if concurrency < 1 {
		return 0, fmt.Errorf("concurrency %d, want >= 1", concurrency)
	}
	if concurrency >= cores {
		ok, err := p.Prompter.Confirm(fmt.Sprintf("Requested %d concurrent games on %d cores; results may be noisy. Continue?", concurrency, cores))
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrDeclined
		}
	}
	return concurrency, nil
}
