package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"selfplay-gen/internal/config"
	"selfplay-gen/internal/match"
	"selfplay-gen/internal/scale"
)

type stubPreparer struct {
	called bool
	err    error
}

func (s *stubPreparer) Run(context.Context) error {
	s.called = true
	return s.err
}

type stubFetcher struct {
	assets Assets
	err    error
}

func (s *stubFetcher) Run(context.Context) (Assets, error) { return s.assets, s.err }

type stubSampler struct {
	nps     int64
	err     error
	load    int
	sampled bool
}

func (s *stubSampler) Sample(context.Context) (int64, error) {
	s.sampled = true
	return s.nps, s.err
}

func (s *stubSampler) SpawnLoad(n int) { s.load = n }

type stubRunner struct {
	params match.Params
	called bool
	err    error
}

func (s *stubRunner) Run(_ context.Context, p match.Params) error {
	s.called = true
	s.params = p
	return s.err
}

type stubPrompter struct {
	ints    map[string]int
	confirm bool
	asked   []string
}

func (s *stubPrompter) Int(label string, def int) (int, error) {
	s.asked = append(s.asked, label)
	if v, ok := s.ints[label]; ok {
		return v, nil
	}
	return def, nil
}

func (s *stubPrompter) Confirm(label string) (bool, error) {
	s.asked = append(s.asked, label)
	return s.confirm, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Engine: config.EngineConfig{
			RepoURL: "https://example.com/engine.git",
			Binary:  "engine-src/src/engine",
			Options: map[string]string{"Hash": "16"},
		},
		Reference: config.ReferenceConfig{NPS: 2400000, BaseTimeMs: 1000, IncMs: 10},
		Match: config.MatchConfig{
			Games:     500,
			BookOrder: "random",
			PGNOut:    "games.pgn",
		},
	}
}

func testBook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.epd")
	err := os.WriteFile(path, []byte("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func testPipeline(t *testing.T) (*Pipeline, *stubPreparer, *stubSampler, *stubRunner, *stubPrompter) {
	prep := &stubPreparer{}
	sampler := &stubSampler{nps: 1200000}
	runner := &stubRunner{}
	prompter := &stubPrompter{ints: map[string]int{}}
	p := &Pipeline{
		Config:        testConfig(),
		RunID:         "r1",
		Preparer:      prep,
		Fetcher:       &stubFetcher{assets: Assets{RunnerPath: "runner", BookPath: testBook(t)}},
		Sampler:       sampler,
		Runner:        runner,
		Prompter:      prompter,
		DetectedCores: 8,
	}
	return p, prep, sampler, runner, prompter
}

func TestRunHappyPath(t *testing.T) {
	p, prep, sampler, runner, prompter := testPipeline(t)
	prompter.ints["Concurrent games"] = 4
	prompter.ints["Number of games"] = 200

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !prep.called || !sampler.sampled || !runner.called {
		t.Fatal("not all steps ran")
	}
	if sampler.load != 3 {
		t.Fatalf("warm-up load = %d, want 3", sampler.load)
	}
	// 2400000*1000/1200000 and 2400000*10/1200000.
	want := scale.TimeControl{BaseMs: 2000, IncMs: 20}
	if runner.params.TimeControl != want {
		t.Fatalf("time control = %+v, want %+v", runner.params.TimeControl, want)
	}
	if runner.params.Games != 200 || runner.params.Concurrency != 4 {
		t.Fatalf("params = %+v", runner.params)
	}
	if runner.params.BookFormat != "epd" {
		t.Fatalf("book format = %q, want epd", runner.params.BookFormat)
	}
}

func TestRunReferenceMachineKeepsReferenceTC(t *testing.T) {
	p, _, sampler, runner, prompter := testPipeline(t)
	sampler.nps = 2400000
	prompter.ints["Concurrent games"] = 1

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := runner.params.TimeControl.String(); got != "1.000+0.010" {
		t.Fatalf("tc = %q, want 1.000+0.010", got)
	}
	if sampler.load != 0 {
		t.Fatalf("warm-up load = %d, want 0 at concurrency 1", sampler.load)
	}
}

func TestRunAbortsOnPrepareFailure(t *testing.T) {
	p, prep, sampler, runner, _ := testPipeline(t)
	prep.err = fmt.Errorf("clone failed")

	if err := p.Run(context.Background()); err == nil {
		t.Fatal("expected prepare failure to abort")
	}
	if sampler.sampled || runner.called {
		t.Fatal("later steps ran after failure")
	}
}

func TestRunAbortsOnInvalidMeasurement(t *testing.T) {
	p, _, sampler, runner, prompter := testPipeline(t)
	sampler.nps = 0
	prompter.ints["Concurrent games"] = 2

	err := p.Run(context.Background())
	if !errors.Is(err, scale.ErrInvalidMeasurement) {
		t.Fatalf("err = %v, want ErrInvalidMeasurement", err)
	}
	if runner.called {
		t.Fatal("match ran with corrupt time control")
	}
}

func TestRunOversubscriptionDeclined(t *testing.T) {
	p, _, sampler, runner, prompter := testPipeline(t)
	prompter.ints["Concurrent games"] = 8
	prompter.confirm = false

	err := p.Run(context.Background())
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("err = %v, want ErrDeclined", err)
	}
	if sampler.sampled || runner.called {
		t.Fatal("pipeline continued after decline")
	}
}

func TestRunOversubscriptionAccepted(t *testing.T) {
	p, _, _, runner, prompter := testPipeline(t)
	prompter.ints["Concurrent games"] = 8
	prompter.confirm = true

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runner.params.Concurrency != 8 {
		t.Fatalf("concurrency = %d, want 8", runner.params.Concurrency)
	}
}

func TestRunPresetSkipsPrompts(t *testing.T) {
	p, _, _, runner, prompter := testPipeline(t)
	p.Concurrency = 2
	p.Games = 50

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(prompter.asked) != 0 {
		t.Fatalf("prompts asked: %v", prompter.asked)
	}
	if runner.params.Games != 50 || runner.params.Concurrency != 2 {
		t.Fatalf("params = %+v", runner.params)
	}
}

func TestRunBenchWriterReceivesSample(t *testing.T) {
	p, _, _, _, prompter := testPipeline(t)
	prompter.ints["Concurrent games"] = 4
	bw := &collectBench{}
	p.BenchWriter = bw

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(bw.samples) != 1 {
		t.Fatalf("samples = %d, want 1", len(bw.samples))
	}
	if bw.samples[0].NPS != 1200000 || bw.samples[0].Concurrency != 4 {
		t.Fatalf("sample = %+v", bw.samples[0])
	}
}

type collectBench struct{ samples []match.BenchSample }

func (c *collectBench) WriteBench(s match.BenchSample) error {
	c.samples = append(c.samples, s)
	return nil
}
