package analytics

import (
	"sort"
	"time"
)

// DayFormat is the canonical calendar-day key used across the engine.
const DayFormat = "2006-01-02"

// DayOf truncates a timestamp to its UTC calendar day (midnight UTC).
// All comparisons in this package happen at this granularity.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar-day difference b - a. Both
// arguments are normalized first, so intra-day offsets never leak in.
func daysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)) / (24 * time.Hour))
}

// uniqueDaysDesc buckets timestamps into calendar days, de-duplicates them
// and returns the days sorted latest first. The input slice is not touched.
func uniqueDaysDesc(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))

	for _, d := range dates {
		day := DayOf(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	return days
}
