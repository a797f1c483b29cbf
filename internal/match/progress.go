package match

import (
	"regexp"
	"strconv"
	"time"
)

// ProgressRow is one completed game observed in the match runner's output.
type ProgressRow struct {
	RunID     string    `json:"run_id"`
	Game      int       `json:"game"`
	Total     int       `json:"total"`
	White     string    `json:"white"`
	Black     string    `json:"black"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// BenchSample records the speed measurement a run was scaled from.
type BenchSample struct {
	RunID       string    `json:"run_id"`
	NPS         int64     `json:"nps"`
	Concurrency int       `json:"concurrency"`
	Timestamp   time.Time `json:"timestamp"`
}

// ProgressWriter receives completed-game rows as the match advances.
type ProgressWriter interface {
	Write(ProgressRow) error
}

// BenchWriter records benchmark samples. Writers may implement it in
// addition to ProgressWriter.
type BenchWriter interface {
	WriteBench(BenchSample) error
}

// c-chess-cli reports finished games as
// "Finished game 12 (stash-a vs stash-b): 1-0 {White mates}".
var finishedGameRe = regexp.MustCompile(`^Finished game (\d+) \((.+?) vs (.+?)\): (\S+)`)

// ParseProgressLine turns a runner output line into a ProgressRow. The
// second return value reports whether the line was a completed-game line.
func ParseProgressLine(line, runID string, total int, now time.Time) (ProgressRow, bool) {
	m := finishedGameRe.FindStringSubmatch(line)
	if m == nil {
		return ProgressRow{}, false
	}
	game, err := strconv.Atoi(m[1])
	if err != nil {
		return ProgressRow{}, false
	}
	return ProgressRow{
		RunID:     runID,
		Game:      game,
		Total:     total,
		White:     m[2],
		Black:     m[3],
		Result:    m[4],
		Timestamp: now,
	}, true
}
