package domain

import "math"

// ProgressPercent derives the funding completion ratio of an issue, clamped
// to [0, 100]. Over-funding displays as complete, never as more than 100%.
// A suggested amount of zero (or less) yields zero rather than dividing.
func ProgressPercent(totalCollected, suggestedAmount float64) int {
	if suggestedAmount <= 0 {
		return 0
	}
	pct := int(math.Round(totalCollected / suggestedAmount * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
