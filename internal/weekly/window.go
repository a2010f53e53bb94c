// Package weekly builds the frozen practice plan for a student-week:
// Monday-anchored windows, age bucketing, and idempotent generation.
package weekly

import (
	"fmt"
	"time"
)

// Zone is the school timezone that anchors week boundaries.
const Zone = "Europe/London"

// Window is one Monday-to-Sunday practice week. Start and End are ISO
// dates (inclusive) in the school timezone.
type Window struct {
	Start string
	End   string
}

// WindowFor returns the week containing t, Monday-anchored in Europe/London.
func WindowFor(t time.Time) (Window, error) {
	loc, err := time.LoadLocation(Zone)
	if err != nil {
		return Window{}, fmt.Errorf("load timezone: %w", err)
	}
	local := t.In(loc)

	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	back := (int(local.Weekday()) + 6) % 7
	monday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -back)
	sunday := monday.AddDate(0, 0, 6)

	return Window{
		Start: monday.Format("2006-01-02"),
		End:   sunday.Format("2006-01-02"),
	}, nil
}

// PreviousWindows returns the start dates of the n weeks before w, newest
// first. Used to exclude recently assigned questions.
func PreviousWindows(w Window, n int) ([]string, error) {
	start, err := time.Parse("2006-01-02", w.Start)
	if err != nil {
		return nil, fmt.Errorf("parse week start: %w", err)
	}
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, start.AddDate(0, 0, -7*i).Format("2006-01-02"))
	}
	return out, nil
}
