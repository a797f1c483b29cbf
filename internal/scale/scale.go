// Time-control scaling against a reference machine profile
package scale

import (
	"errors"
	"fmt"
)

// ErrInvalidMeasurement is returned when a benchmark sample cannot be used
// for scaling the time control.
var ErrInvalidMeasurement = errors.New("invalid benchmark measurement")

// ReferenceProfile describes the machine the canonical time control was
// tuned on: its search speed and the time control used there.
type ReferenceProfile struct {
	NPS        int64
	BaseTimeMs int64
	IncMs      int64
}

// TimeControl is a base thinking time plus per-move increment, in milliseconds.
type TimeControl struct {
	BaseMs int64
	IncMs  int64
}

// Scale derives the local time control from the measured search speed.
// Integer floor division keeps generated datasets reproducible across
// machines running the same reference profile.
func (p ReferenceProfile) Scale(measuredNPS int64) (TimeControl, error) {
	if measuredNPS <= 0 {
		return TimeControl{}, fmt.Errorf("measured %d nps: %w", measuredNPS, ErrInvalidMeasurement)
	}
	tc := TimeControl{
		BaseMs: p.NPS * p.BaseTimeMs / measuredNPS,
		IncMs:  p.NPS * p.IncMs / measuredNPS,
	}
	// Scaled values must stay strictly positive or the match runner would
	// receive a zero clock.
	if tc.BaseMs < 1 || tc.IncMs < 1 {
		return TimeControl{}, fmt.Errorf("time control %v underflows at %d nps: %w", tc, measuredNPS, ErrInvalidMeasurement)
	}
	return tc, nil
}

// String renders the time control in the seconds+increment form accepted by
// match runners, e.g. "1.000+0.010".
func (tc TimeControl) String() string {
	return fmt.Sprintf("%.3f+%.3f", float64(tc.BaseMs)/1000, float64(tc.IncMs)/1000)
}
