package plan

// NextIndex finds the next actionable item after current, scanning forward
// circularly so a student can resume from wherever they stopped. The first
// pass looks for a pending item; skipped items are only revisited once no
// pending items remain anywhere in the week. Returns false when neither
// exists, which callers treat as the week being finished.
func NextIndex(current int, items []Item) (int, bool) {
	if idx, ok := scan(current, items, StatusPending); ok {
		return idx, true
	}
	return scan(current, items, StatusSkipped)
}

func scan(current int, items []Item, want Status) (int, bool) {
	n := len(items)
	if n == 0 {
		return 0, false
	}
	for step := 1; step <= n; step++ {
		idx := (current + step) % n
		if idx < 0 {
			idx += n
		}
		if items[idx].Status == want {
			return idx, true
		}
	}
	return 0, false
}

// StartIndex picks the initial position when a week is loaded: the first
// pending item, else the first skipped, else 0.
func StartIndex(items []Item) int {
	for i, it := range items {
		if it.Status == StatusPending {
			return i
		}
	}
	for i, it := range items {
		if it.Status == StatusSkipped {
			return i
		}
	}
	return 0
}
