// Benchmark output scraping
package bench

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparsableOutput is returned when no nodes-per-second figure can be
// located in the benchmark output.
var ErrUnparsableOutput = errors.New("no nps figure in benchmark output")

// Engines disagree on how they print their speed; these cover the common
// spellings after normalization.
var npsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+) nps`),
	regexp.MustCompile(`nps (\d+)`),
	regexp.MustCompile(`nodes second (\d+)`),
}

// ParseNPS extracts the nodes-per-second figure from free-form benchmark
// output. Benchmark tools conventionally print the aggregate summary last,
// so when several figures appear the last one wins.
func ParseNPS(output string) (int64, error) {
	norm := normalize(output)
	start := -1
	var digits string
	for _, re := range npsPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(norm, -1) {
			if m[0] > start {
				start = m[0]
				digits = norm[m[2]:m[3]]
			}
		}
	}
	if start < 0 {
		return 0, ErrUnparsableOutput
	}
	nps, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("nps figure %q: %w", digits, ErrUnparsableOutput)
	}
	return nps, nil
}

// normalize lowercases the output, maps every non-alphanumeric byte to a
// space and collapses runs of spaces, so the patterns match regardless of
// punctuation or line breaks.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
