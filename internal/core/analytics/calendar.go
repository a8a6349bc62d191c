package analytics

import "time"

// ComputeCalendar counts events per calendar day within the given month.
// Keys use the YYYY-MM-DD format; days without events are absent from the
// map, so callers treat a missing key as zero. Events outside the month
// contribute nothing.
func ComputeCalendar(dates []time.Time, year int, month time.Month) map[string]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	out := make(map[string]int)
	for _, d := range dates {
		day := DayOf(d)
		if day.Before(first) || day.After(last) {
			continue
		}
		out[day.Format(DayFormat)]++
	}

	return out
}
