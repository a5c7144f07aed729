package pipeline

import "math"

// Winner labels for a county margin.
const (
	WinnerGOP = "Republican"
	WinnerDem = "Democratic"
	WinnerTie = "Tie"
)

// Margin is the signed two-party vote share difference, GOP minus Dem,
// normalized by total ballots. It lies in [-1, 1] whenever total > 0 and is
// NaN when total is zero — an undefined value, not an error. Callers that
// color by margin must filter NaN rows; tabular output keeps them.
func Margin(gop, dem, total int) float64 {
	if total == 0 {
		return math.NaN()
	}
	return float64(gop-dem) / float64(total)
}

// Shift is the change in margin between two periods for the same key.
// NaN propagates from either input.
func Shift(cur, prev float64) float64 {
	return cur - prev
}

// Winner maps a margin to its display label. A margin of exactly zero is a
// valid, displayable tie.
func Winner(margin float64) string {
	switch {
	case math.IsNaN(margin):
		return ""
	case margin > 0:
		return WinnerGOP
	case margin < 0:
		return WinnerDem
	default:
		return WinnerTie
	}
}
