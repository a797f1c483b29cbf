// Match runner invocation parameters
package match

import (
	"fmt"
	"sort"
	"strconv"

	"selfplay-gen/internal/scale"
)

// Adjudication holds the draw and resign thresholds passed to the runner.
// Zero counts disable the respective rule.
type Adjudication struct {
	DrawMoveNumber int
	DrawMoveCount  int
	DrawScore      int
	ResignCount    int
	ResignScore    int
}

// Params describes one self-play batch.
type Params struct {
	EngineCmd    string
	EngineName   string
	Options      map[string]string
	TimeControl  scale.TimeControl
	Games        int
	Concurrency  int
	BookPath     string
	BookFormat   string
	BookOrder    string
	Adjudication Adjudication
	PGNOut       string
}

// Args builds the c-chess-cli argument list. Engine options are emitted in
// sorted order so identical params always produce an identical command line.
func (p Params) Args() []string {
	args := []string{
		"-each",
		"cmd=" + p.EngineCmd,
		"tc=" + p.TimeControl.String(),
	}
	keys := make([]string, 0, len(p.Options))
	for k := range p.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "option."+k+"="+p.Options[k])
	}

	args = append(args,
		"-engine", "name="+p.EngineName+"-a",
		"-engine", "name="+p.EngineName+"-b",
		"-games", strconv.Itoa(p.Games),
		"-concurrency", strconv.Itoa(p.Concurrency),
		"-openings", "file="+p.BookPath, "format="+p.BookFormat, "order="+p.BookOrder,
		"-repeat",
	)

	if a := p.Adjudication; a.DrawMoveCount > 0 {
		args = append(args, "-draw",
			"number="+strconv.Itoa(a.DrawMoveNumber),
			"count="+strconv.Itoa(a.DrawMoveCount),
			"score="+strconv.Itoa(a.DrawScore),
		)
	}
	if a := p.Adjudication; a.ResignCount > 0 {
		args = append(args, "-resign",
			"count="+strconv.Itoa(a.ResignCount),
			"score="+strconv.Itoa(a.ResignScore),
		)
	}

	args = append(args, "-pgn", p.PGNOut)
	return args
}

// Validate rejects parameter sets the runner would choke on.
func (p Params) Validate() error {
	if p.EngineCmd == "" {
		return fmt.Errorf("engine command required")
	}
	if p.Games < 1 {
		return fmt.Errorf("games = %d, want >= 1", p.Games)
	}
	if p.Concurrency < 1 {
		return fmt.Errorf("concurrency = %d, want >= 1", p.Concurrency)
	}
	if p.TimeControl.BaseMs < 1 || p.TimeControl.IncMs < 1 {
		return fmt.Errorf("time control %v not strictly positive", p.TimeControl)
	}
	if p.BookPath == "" {
		return fmt.Errorf("opening book required")
	}
	if p.PGNOut == "" {
		return fmt.Errorf("pgn output path required")
	}
	return nil
}
