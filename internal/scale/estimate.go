package scale

// incrementsPerGame is the assumed number of increments paid out over a
// typical game, matching the canonical dataset runs.
const incrementsPerGame = 100

const millisPerHour = 3600000

// Estimate is the expected game length and throughput for a time control.
// It is informational only and never gates a run.
type Estimate struct {
	GameLengthMs int64
	GamesPerHour int64
}

// EstimateThroughput computes the expected wall time of one game (both
// clocks plus the increments played out) and the resulting games per hour.
func EstimateThroughput(tc TimeControl) Estimate {
	length := tc.BaseMs*2 + tc.IncMs*incrementsPerGame
	if length <= 0 {
		return Estimate{}
	}
	return Estimate{
		GameLengthMs: length,
		GamesPerHour: millisPerHour / length,
	}
}
