// Match runner process control
package match

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner launches the external game runner and streams its progress to a
// writer. There is no retry and no timeout: a wedged runner blocks the run.
type Runner struct {
	Binary string
	RunID  string
	Writer ProgressWriter

	// now is a clock seam for tests.
	now func() time.Time
}

// NewRunner returns a Runner reporting rows tagged with runID.
func NewRunner(binary, runID string, w ProgressWriter) *Runner {
	return &Runner{Binary: binary, RunID: runID, Writer: w, now: time.Now}
}

// Run validates params, invokes the runner binary and pumps its output until
// the process exits. Each completed-game line is delivered to the writer;
// all other output is logged verbatim.
func (r *Runner) Run(ctx context.Context, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if r.now == nil {
		r.now = time.Now
	}

	// The command runs under the group's context so a failed pump kills
	// the child instead of leaving it blocked on a full pipe.
	g, gctx := errgroup.WithContext(ctx)
	cmd := exec.CommandContext(gctx, r.Binary, p.Args()...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", r.Binary, err)
	}

	g.Go(func() error {
		return r.pump(stdout, p.Games)
	})
	g.Go(func() error {
		sc := bufio.NewScanner(stderr)
		for sc.Scan() {
			log.Printf("[Match] runner: %s", sc.Text())
		}
		return sc.Err()
	})

	pumpErr := g.Wait()
	waitErr := cmd.Wait()
	if pumpErr != nil {
		return pumpErr
	}
	if waitErr != nil {
		return fmt.Errorf("%s: %w", r.Binary, waitErr)
	}
	return nil
}

func (r *Runner) pump(out io.Reader, total int) error {
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		line := sc.Text()
		row, ok := ParseProgressLine(line, r.RunID, total, r.now())
		if !ok {
			log.Printf("[Match] %s", line)
			continue
		}
		if r.Writer == nil {
			continue
		}
		if err := r.Writer.Write(row); err != nil {
			return err
		}
	}
	return sc.Err()
}
