package plan

// Snapshot is the derived progress state for a week. It is recomputed from
// the items after every mutation rather than maintained incrementally, so
// the displayed progress can never drift from the known plan state.
type Snapshot struct {
	Done   map[string]int `json:"done"`
	Target TargetCounts   `json:"target"`
}

// Recompute derives a Snapshot from the plan items. Pure: calling it twice
// on the same input yields identical snapshots. Empty input yields an
// all-zero snapshot that is never complete.
func Recompute(items []Item) Snapshot {
	snap := Snapshot{
		Done:   make(map[string]int),
		Target: TargetCounts{},
	}
	if len(items) == 0 {
		return snap
	}

	// Targets are identical on every row by construction; read the first.
	for k, n := range items[0].Targets {
		snap.Target[k] = n
	}

	for _, it := range items {
		if it.Status == StatusAnswered {
			snap.Done[Key(it.Difficulty, it.Bucket)]++
		}
	}
	return snap
}

// DoneTotal sums all answered counts.
func (s Snapshot) DoneTotal() int {
	total := 0
	for _, n := range s.Done {
		total += n
	}
	return total
}

// Complete reports whether the week's targets are met: total target > 0
// and total done at least total target.
func (s Snapshot) Complete() bool {
	target := s.Target.Total()
	return target > 0 && s.DoneTotal() >= target
}

// Percent is the completion percentage for display, capped at 100.
// Zero targets report 0.
func (s Snapshot) Percent() int {
	target := s.Target.Total()
	if target == 0 {
		return 0
	}
	pct := s.DoneTotal() * 100 / target
	if pct > 100 {
		pct = 100
	}
	return pct
}
