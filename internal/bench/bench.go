package bench

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
)

// Sampler measures an engine's search speed via its built-in bench mode.
type Sampler struct {
	EnginePath string
	// Args passed to the engine to trigger the benchmark; defaults to
	// {"bench"}.
	Args []string
}

func (s *Sampler) args() []string {
	if len(s.Args) > 0 {
		return s.Args
	}
	return []string{"bench"}
}

// Sample runs one foreground benchmark to completion and parses the
// nodes-per-second figure from its combined output.
func (s *Sampler) Sample(ctx context.Context) (int64, error) {
	cmd := exec.CommandContext(ctx, s.EnginePath, s.args()...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("run %s bench: %w", s.EnginePath, err)
	}
	nps, err := ParseNPS(buf.String())
	if err != nil {
		return 0, fmt.Errorf("parse %s bench output: %w", s.EnginePath, err)
	}
	return nps, nil
}

// SpawnLoad starts n fire-and-forget background bench processes to mimic the
// load of a concurrent match while the foreground sample runs. Output is
// discarded and completion is not awaited; there is no guarantee the
// processes are still running when Sample executes.
func (s *Sampler) SpawnLoad(n int) {
	for i := 0; i < n; i++ {
		cmd := exec.Command(s.EnginePath, s.args()...)
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
		if err := cmd.Start(); err != nil {
			log.Printf("[Bench] warm-up process: %v", err)
			continue
		}
		// Reap the child when it exits so it does not linger as a zombie.
		go cmd.Wait()
	}
}
