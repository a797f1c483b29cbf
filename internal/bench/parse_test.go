package bench

import (
	"context"
	"errors"
	"testing"
)

func TestParseNPS(t *testing.T) {
	cases := []struct {
		name   string
		output string
		want   int64
	}{
		{
			name:   "digits before nps",
			output: "info depth 16\nNodes: 4123000\n1234567 nps\n",
			want:   1234567,
		},
		{
			name:   "nps before digits",
			output: "bench done\nnps 1234567\n",
			want:   1234567,
		},
		{
			name:   "nodes per second spelling",
			output: "Nodes/second : 2412345\n",
			want:   2412345,
		},
		{
			name:   "punctuation normalized",
			output: "NPS: 1,234? no. Summary => [1234567] NPS.",
			want:   1234567,
		},
		{
			name:   "last figure wins",
			output: "position 1: 900000 nps\nposition 2: 1100000 nps\noverall: nps 1000000\n",
			want:   1000000,
		},
		{
			name:   "case insensitive",
			output: "4132790 NPS",
			want:   4132790,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseNPS(tc.output)
			if err != nil {
				t.Fatalf("ParseNPS: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseNPS = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParseNPSNoMatch(t *testing.T) {
	for _, output := range []string{"", "bench finished in 3.2s", "nodes 4123000"} {
		if _, err := ParseNPS(output); !errors.Is(err, ErrUnparsableOutput) {
			t.Fatalf("ParseNPS(%q) err = %v, want ErrUnparsableOutput", output, err)
		}
	}
}

func TestSampleMissingEngine(t *testing.T) {
	s := &Sampler{EnginePath: "/nonexistent/engine"}
	if _, err := s.Sample(context.Background()); err == nil {
		t.Fatal("expected error for missing engine binary")
	}
}
