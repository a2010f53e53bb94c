package weekly

import (
	"context"
	"testing"
	"time"

	"github.com/hbennett/revisio/internal/plan"
	"github.com/hbennett/revisio/internal/store"
)

type fakePlans struct {
	weeks   map[string][]map[string]any // keyed by week_start
	created [][]store.NewItem
}

func (f *fakePlans) HasWeek(_ context.Context, _, _, weekStart string) (bool, error) {
	return len(f.weeks[weekStart]) > 0, nil
}

func (f *fakePlans) ItemsForWeek(_ context.Context, _, _, weekStart string) ([]map[string]any, error) {
	return f.weeks[weekStart], nil
}

func (f *fakePlans) CreateWeek(_ context.Context, items []store.NewItem) error {
	f.created = append(f.created, items)
	if f.weeks == nil {
		f.weeks = map[string][]map[string]any{}
	}
	for _, it := range items {
		f.weeks[it.WeekStart] = append(f.weeks[it.WeekStart], map[string]any{
			"item_id":       it.ItemID,
			"week_id":       it.WeekID,
			"question_id":   it.QuestionID,
			"bucket":        it.Bucket,
			"difficulty":    it.Difficulty,
			"order_index":   int64(it.OrderIndex),
			"status":        "pending",
			"skip_count":    int64(0),
			"target_counts": it.TargetsJSON,
		})
	}
	return nil
}

func (f *fakePlans) RecentQuestionIDs(context.Context, string, string, string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

type fakeQuestions struct {
	candidates []store.Candidate
}

func (f *fakeQuestions) Candidates(context.Context, []string) ([]store.Candidate, error) {
	return f.candidates, nil
}

type fakeCoverage struct {
	topics []string
}

func (f *fakeCoverage) CoveredTopics(context.Context, string) ([]string, error) {
	return f.topics, nil
}

func newTestGenerator(plans *fakePlans, qs *fakeQuestions, cov *fakeCoverage) *Generator {
	return &Generator{
		Plans:     plans,
		Questions: qs,
		Coverage:  cov,
		Now: func() time.Time {
			return time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
		},
	}
}

func candidatesAged(weekStart time.Time) []store.Candidate {
	mk := func(id string, ageDays int) store.Candidate {
		return store.Candidate{
			ID:         id,
			TopicCode:  "3.1.1",
			Difficulty: "easy",
			CreatedAt:  weekStart.AddDate(0, 0, -ageDays),
		}
	}
	return []store.Candidate{
		mk("q-new-1", 3), mk("q-new-2", 10),
		mk("q-mid-1", 20), mk("q-mid-2", 40),
		mk("q-old-1", 60), mk("q-old-2", 90),
	}
}

func TestGetOrCreateBucketsByAge(t *testing.T) {
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	plans := &fakePlans{}
	g := newTestGenerator(plans, &fakeQuestions{candidates: candidatesAged(weekStart)}, &fakeCoverage{topics: []string{"3.1.1"}})

	req := Request{
		StudentID: "stu-1",
		ClassID:   "cls-1",
		Targets:   plan.TargetCounts{"easy:new": 1, "easy:mid": 1, "easy:old": 1},
	}
	rows, window, err := g.GetOrCreate(context.Background(), req)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if window.Start != "2026-08-31" {
		t.Errorf("window.Start = %s, want 2026-08-31", window.Start)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	buckets := map[string]int{}
	for _, it := range plans.created[0] {
		buckets[it.Bucket]++
	}
	for _, b := range []string{"new", "mid", "old"} {
		if buckets[b] != 1 {
			t.Errorf("bucket %s count = %d, want 1", b, buckets[b])
		}
	}
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	plans := &fakePlans{}
	g := newTestGenerator(plans, &fakeQuestions{candidates: candidatesAged(weekStart)}, &fakeCoverage{topics: []string{"3.1.1"}})

	req := Request{StudentID: "stu-1", ClassID: "cls-1", Targets: plan.TargetCounts{"easy:new": 2}}
	first, _, err := g.GetOrCreate(context.Background(), req)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	second, _, err := g.GetOrCreate(context.Background(), req)
	if err != nil {
		t.Fatalf("GetOrCreate() second call error = %v", err)
	}

	if len(plans.created) != 1 {
		t.Fatalf("CreateWeek called %d times, want 1", len(plans.created))
	}
	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i]["item_id"] != second[i]["item_id"] {
			t.Errorf("row %d item_id changed between calls", i)
		}
	}
}

func TestGetOrCreateDeterministicSelection(t *testing.T) {
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	req := Request{StudentID: "stu-1", ClassID: "cls-1", Targets: plan.TargetCounts{"easy:old": 1}}

	pick := func() string {
		plans := &fakePlans{}
		g := newTestGenerator(plans, &fakeQuestions{candidates: candidatesAged(weekStart)}, &fakeCoverage{topics: []string{"3.1.1"}})
		if _, _, err := g.GetOrCreate(context.Background(), req); err != nil {
			t.Fatalf("GetOrCreate() error = %v", err)
		}
		return plans.created[0][0].QuestionID
	}

	first := pick()
	for i := 0; i < 5; i++ {
		if got := pick(); got != first {
			t.Fatalf("selection not deterministic: %s vs %s", got, first)
		}
	}
}

func TestGetOrCreateNoCoverageMeansEmptyPlan(t *testing.T) {
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	plans := &fakePlans{}
	g := newTestGenerator(plans, &fakeQuestions{candidates: candidatesAged(weekStart)}, &fakeCoverage{})

	rows, _, err := g.GetOrCreate(context.Background(), Request{
		StudentID: "stu-1", ClassID: "cls-1", Targets: plan.TargetCounts{"easy:new": 2},
	})
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
	if len(plans.created) != 0 {
		t.Errorf("CreateWeek called %d times, want 0", len(plans.created))
	}
}

func TestGetOrCreateShortPoolTakesWhatExists(t *testing.T) {
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	plans := &fakePlans{}
	qs := &fakeQuestions{candidates: []store.Candidate{
		{ID: "q-1", TopicCode: "3.1.1", Difficulty: "easy", CreatedAt: weekStart.AddDate(0, 0, -3)},
	}}
	g := newTestGenerator(plans, qs, &fakeCoverage{topics: []string{"3.1.1"}})

	rows, _, err := g.GetOrCreate(context.Background(), Request{
		StudentID: "stu-1", ClassID: "cls-1",
		Targets: plan.TargetCounts{"easy:new": 5, "hard:old": 3},
	})
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want 1", len(rows))
	}
}
