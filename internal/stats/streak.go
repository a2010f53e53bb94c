// Package stats derives streaks and score-distribution statistics from a
// student's answer history.
package stats

import (
	"sort"
	"time"
)

// Streak holds the consecutive-day activity counts for a student.
type Streak struct {
	Current int `json:"current_streak"`
	Best    int `json:"best_streak"`
}

// Streaks computes current and best streaks from activity timestamps.
// Timestamps reduce to distinct calendar days in loc; a run extends while
// consecutive days are exactly one day apart and resets to 1 on any larger
// gap. Current is the run containing the most recent day; Best is the
// longest run anywhere in the history. No activity yields zeros.
func Streaks(times []time.Time, loc *time.Location) Streak {
	if len(times) == 0 {
		return Streak{}
	}
	if loc == nil {
		loc = time.UTC
	}

	// Distinct calendar days. Day identity comes from the local date, but
	// the marker is UTC-anchored so day arithmetic is immune to DST.
	seen := make(map[time.Time]bool, len(times))
	for _, ts := range times {
		local := ts.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
		seen[day] = true
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	best := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	// Current streak is the run anchored at the most recent day.
	current := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) != 24*time.Hour {
			break
		}
		current++
	}

	return Streak{Current: current, Best: best}
}
