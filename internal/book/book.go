// Opening book inspection
package book

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notnil/chess"
)

// Info summarizes a validated opening book.
type Info struct {
	Path      string
	Format    string
	Positions int
}

// Inspect validates an opening book before it is handed to the match runner.
// EPD books are checked line by line; PGN books are parsed as games. An empty
// or malformed book is an error, since the runner would only fail later and
// less clearly.
func Inspect(path string) (Info, error) {
	format := Format(path)
	switch format {
	case "epd":
		n, err := countEPD(path)
		if err != nil {
			return Info{}, err
		}
		return Info{Path: path, Format: format, Positions: n}, nil
	case "pgn":
		n, err := countPGN(path)
		if err != nil {
			return Info{}, err
		}
		return Info{Path: path, Format: format, Positions: n}, nil
	default:
		return Info{}, fmt.Errorf("book %s: unsupported format %q", path, format)
	}
}

// Format derives the book format from the file extension.
func Format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func countEPD(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	line := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 4 {
			return 0, fmt.Errorf("book %s line %d: not an EPD record", path, line)
		}
		// An EPD record carries no move counters; complete the FEN so the
		// position can be validated.
		fen := strings.Join(fields[:4], " ") + " 0 1"
		if _, err := chess.FEN(fen); err != nil {
			return 0, fmt.Errorf("book %s line %d: %w", path, line, err)
		}
		count++
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, fmt.Errorf("book %s: no usable positions", path)
	}
	return count, nil
}

func countPGN(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	games, err := chess.GamesFromPGN(f)
	if err != nil {
		return 0, fmt.Errorf("book %s: %w", path, err)
	}
	if len(games) == 0 {
		return 0, fmt.Errorf("book %s: no usable positions", path)
	}
	return len(games), nil
}
