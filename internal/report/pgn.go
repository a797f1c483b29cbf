package report

import (
	"fmt"
	"os"

	"github.com/notnil/chess"
)

// PGNStats describes the PGN dataset a run produced.
type PGNStats struct {
	Games     int
	Moves     int
	AvgLength float64
}

// InspectPGN parses the dataset and reports how many games and moves it
// holds. A game the parser rejects fails the whole inspection so a
// truncated or corrupt dataset is caught before training consumes it.
func InspectPGN(path string) (PGNStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return PGNStats{}, err
	}
	defer f.Close()

	games, err := chess.GamesFromPGN(f)
	if err != nil {
		return PGNStats{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(games) == 0 {
		return PGNStats{}, fmt.Errorf("%s holds no games", path)
	}
	st := PGNStats{Games: len(games)}
	for _, g := range games {
		st.Moves += len(g.Moves())
	}
	st.AvgLength = float64(st.Moves) / float64(st.Games)
	return st, nil
}
