package analytics

import (
	"math"
	"sort"
	"time"
)

// Confidence classifies how comfortably the projected completion date
// precedes the deadline.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ValuedEvent is a dated, valued progress record.
type ValuedEvent struct {
	Date  time.Time
	Value float64
}

type Projection struct {
	Date          time.Time
	DaysRemaining int
	Confidence    Confidence
}

// ProgressStats carries the totals for a valued event history plus, when a
// target and deadline were supplied and at least one entry exists, a
// completion projection. A nil Projection means there was nothing to
// extrapolate toward.
type ProgressStats struct {
	Total         float64
	AveragePerDay float64
	DaysActive    int
	CurrentStreak int
	Projection    *Projection
}

// ComputeProgress sums a goal's progress history and, for target-based
// goals, extrapolates the observed daily rate to a projected completion
// date. Empty input returns all zeroes and no projection. The entries
// slice is copied before sorting, never mutated.
func ComputeProgress(entries []ValuedEvent, target *float64, deadline *time.Time, now time.Time) ProgressStats {
	if len(entries) == 0 {
		return ProgressStats{}
	}

	sorted := make([]ValuedEvent, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	total := 0.0
	dates := make([]time.Time, 0, len(sorted))
	for _, e := range sorted {
		total += e.Value
		dates = append(dates, e.Date)
	}

	first := DayOf(sorted[0].Date)
	last := DayOf(sorted[len(sorted)-1].Date)

	// Inclusive span: a single entry still counts as one active day.
	daysActive := daysBetween(first, last) + 1

	avg := 0.0
	if daysActive > 0 {
		avg = total / float64(daysActive)
	}

	stats := ProgressStats{
		Total:         total,
		AveragePerDay: avg,
		DaysActive:    daysActive,
		CurrentStreak: ComputeStreak(dates, now).Current,
	}

	if target != nil && deadline != nil {
		stats.Projection = project(total, avg, last, *target, *deadline)
	}

	return stats
}

func project(total, avg float64, lastEntry time.Time, target float64, deadline time.Time) *Projection {
	deadlineDay := DayOf(deadline)
	remaining := target - total
	rawDaysToDeadline := daysBetween(lastEntry, deadlineDay)

	if remaining <= 0 {
		return &Projection{Date: deadlineDay, DaysRemaining: 0, Confidence: ConfidenceHigh}
	}

	if avg <= 0 {
		// No forward progress to extrapolate; the deadline stands in as a
		// placeholder date.
		return &Projection{Date: deadlineDay, DaysRemaining: rawDaysToDeadline, Confidence: ConfidenceLow}
	}

	neededDays := int(math.Ceil(remaining / avg))
	projected := lastEntry.AddDate(0, 0, neededDays)

	confidence := ConfidenceLow
	switch {
	case float64(neededDays) <= 0.7*float64(rawDaysToDeadline):
		confidence = ConfidenceHigh
	case neededDays <= rawDaysToDeadline:
		confidence = ConfidenceMedium
	}

	days := neededDays
	if days < 0 {
		days = 0
	}

	return &Projection{Date: projected, DaysRemaining: days, Confidence: confidence}
}
