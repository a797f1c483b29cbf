// Post-run analysis of progress logs and PGN datasets
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"selfplay-gen/internal/match"
)

// Summary aggregates one finished run.
type Summary struct {
	RunID        string
	Games        int
	WhiteWins    int
	BlackWins    int
	Draws        int
	Elapsed      time.Duration
	GamesPerHour float64
}

// FromLog aggregates the JSONL progress rows written during a run.
func FromLog(r io.Reader) (Summary, error) {
	dec := json.NewDecoder(r)
	var s Summary
	var first, last time.Time
	for {
		var row match.ProgressRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				break
			}
			return Summary{}, err
		}
		if s.RunID == "" {
			s.RunID = row.RunID
		}
		s.Games++
		switch row.Result {
		case "1-0":
			s.WhiteWins++
		case "0-1":
			s.BlackWins++
		default:
			s.Draws++
		}
		if first.IsZero() || row.Timestamp.Before(first) {
			first = row.Timestamp
		}
		if row.Timestamp.After(last) {
			last = row.Timestamp
		}
	}
	if s.Games == 0 {
		return Summary{}, fmt.Errorf("progress log holds no completed games")
	}
	s.Elapsed = last.Sub(first)
	if s.Elapsed > 0 {
		s.GamesPerHour = float64(s.Games) / s.Elapsed.Hours()
	}
	return s, nil
}

// FromLogFile opens a progress log and aggregates it.
func FromLogFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()
	return FromLog(f)
}

// DrawRate is the fraction of games adjudicated or played to a draw.
func (s Summary) DrawRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.Games)
}

// Stat holds match statistics from the white player's point of view.
// https://www.chessprogramming.org/Match_Statistics
type Stat struct {
	WinningFraction float64
	EloDifference   float64
	LOS             float64
}

// Stat computes the winning fraction, Elo difference and likelihood of
// superiority for the white side of the dataset.
func (s Summary) Stat() Stat {
	games := s.WhiteWins + s.BlackWins + s.Draws
	if games == 0 {
		return Stat{}
	}
	wf := (float64(s.WhiteWins) + 0.5*float64(s.Draws)) / float64(games)
	st := Stat{WinningFraction: wf}
	if wf > 0 && wf < 1 {
		st.EloDifference = -math.Log(1/wf-1) * 400 / math.Ln10
	}
	if s.WhiteWins+s.BlackWins > 0 {
		st.LOS = 0.5 + 0.5*math.Erf(float64(s.WhiteWins-s.BlackWins)/math.Sqrt(2*float64(s.WhiteWins+s.BlackWins)))
	}
	return st
}

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true)
	reportLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render formats the summary for the terminal.
func (s Summary) Render() string {
	var b strings.Builder
	b.WriteString(reportTitleStyle.Render("Run "+s.RunID) + "\n")
	line := func(label, value string) {
		b.WriteString(reportLabelStyle.Render(fmt.Sprintf("%-14s", label)) + value + "\n")
	}
	st := s.Stat()
	line("games", fmt.Sprintf("%d", s.Games))
	line("score", fmt.Sprintf("+%d -%d =%d [%.3f]", s.WhiteWins, s.BlackWins, s.Draws, st.WinningFraction))
	line("draw rate", fmt.Sprintf("%.1f%%", s.DrawRate()*100))
	line("elo (white)", fmt.Sprintf("%+.1f, LOS %.1f%%", st.EloDifference, st.LOS*100))
	if s.Elapsed > 0 {
		line("elapsed", s.Elapsed.Truncate(time.Second).String())
		line("throughput", fmt.Sprintf("%.0f games/hour", s.GamesPerHour))
	}
	return strings.TrimRight(b.String(), "\n")
}
