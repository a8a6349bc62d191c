// Package analytics turns sets of dated events into derived statistics:
// consecutive-day streaks, per-month calendar heatmaps and completion
// projections. Every function is pure: no state survives a call, inputs
// are never mutated, and degenerate input degrades to zero values instead
// of errors.
package analytics

import "time"

type StreakResult struct {
	Current int
	Longest int
}

// ComputeStreak counts consecutive calendar days with at least one event,
// walking backward from the most recent day. The streak is alive only if
// the most recent day is today or yesterday relative to now; a most recent
// day in the future yields 0. Within the sequence every adjacent pair must
// be exactly one day apart. Longest is the best run anywhere in the
// history, regardless of whether it is still alive.
func ComputeStreak(dates []time.Time, now time.Time) StreakResult {
	days := uniqueDaysDesc(dates)
	if len(days) == 0 {
		return StreakResult{}
	}

	longest := longestRun(days)

	today := DayOf(now)
	yesterday := today.AddDate(0, 0, -1)
	mostRecent := days[0]

	if mostRecent.After(today) || mostRecent.Before(yesterday) {
		return StreakResult{Current: 0, Longest: longest}
	}

	current := 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) != 1 {
			break
		}
		current++
	}

	return StreakResult{Current: current, Longest: longest}
}

// longestRun scans the latest-first day list for the longest chain of
// exactly-adjacent days.
func longestRun(days []time.Time) int {
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
