// Package plan models the frozen weekly practice plan: typed items, the
// permissive normalizer for raw storage rows, order within the week, and
// the derived progress snapshot.
package plan

// Status is a plan item's completion state. Transitions are one-way:
// pending → answered on successful submission, pending → skipped on an
// explicit skip; nothing leaves answered.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAnswered Status = "answered"
	StatusSkipped  Status = "skipped"
)

// Bucket is the recency category of the underlying question.
type Bucket string

const (
	BucketNew Bucket = "new"
	BucketMid Bucket = "mid"
	BucketOld Bucket = "old"
)

// TargetCounts maps "difficulty:bucket" composite keys to item targets.
// Every item in a week carries the same value, denormalized per row.
type TargetCounts map[string]int

// Total sums all targets.
func (tc TargetCounts) Total() int {
	total := 0
	for _, n := range tc {
		total += n
	}
	return total
}

// Key builds the composite "difficulty:bucket" key.
func Key(difficulty string, bucket Bucket) string {
	return difficulty + ":" + string(bucket)
}

// Item is one assigned practice question for a student-week.
type Item struct {
	WeekID     string       `json:"week_id"`
	ItemID     string       `json:"item_id"`
	QuestionID string       `json:"question_id"`
	Bucket     Bucket       `json:"bucket"`
	Difficulty string       `json:"difficulty"`
	OrderIndex int          `json:"order_index"`
	Status     Status       `json:"status"`
	SkipCount  int          `json:"skip_count"`
	Targets    TargetCounts `json:"target_counts"`
}

// Dedupe collapses duplicate question IDs, keeping the first occurrence in
// order. Input order is preserved.
func Dedupe(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if seen[it.QuestionID] {
			continue
		}
		seen[it.QuestionID] = true
		out = append(out, it)
	}
	return out
}
