package weekly

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hbennett/revisio/internal/plan"
	"github.com/hbennett/revisio/internal/store"
)

// Default age thresholds, in days since the question was authored.
const (
	DefaultNewDays  = 14
	DefaultMidDays  = 45
	DefaultLookback = 3 // weeks of assignment history to avoid repeating
)

// PlanStore is the slice of plan persistence the generator needs.
type PlanStore interface {
	HasWeek(ctx context.Context, studentID, classID, weekStart string) (bool, error)
	ItemsForWeek(ctx context.Context, studentID, classID, weekStart string) ([]map[string]any, error)
	CreateWeek(ctx context.Context, items []store.NewItem) error
	RecentQuestionIDs(ctx context.Context, studentID, classID, cutoffWeekStart string) (map[string]bool, error)
}

// QuestionStore supplies generation candidates.
type QuestionStore interface {
	Candidates(ctx context.Context, topicCodes []string) ([]store.Candidate, error)
}

// CoverageStore supplies the topics a class has been taught.
type CoverageStore interface {
	CoveredTopics(ctx context.Context, classID string) ([]string, error)
}

// Request describes one student-week to generate.
type Request struct {
	StudentID string
	ClassID   string
	At        time.Time // any instant inside the wanted week; zero means now
	Targets   plan.TargetCounts
	NewDays   int
	MidDays   int
	Lookback  int
}

// Generator builds and freezes weekly plans.
type Generator struct {
	Plans     PlanStore
	Questions QuestionStore
	Coverage  CoverageStore
	Now       func() time.Time
}

func NewGenerator(s *store.Store) *Generator {
	return &Generator{
		Plans:     s.Plans(),
		Questions: s.Questions(),
		Coverage:  s.Coverage(),
		Now:       time.Now,
	}
}

// GetOrCreate returns the raw plan rows for the student-week, generating
// and freezing them first if none exist. Existing rows are returned as-is:
// a week never changes shape after creation, whatever the current targets
// or catalogue look like.
func (g *Generator) GetOrCreate(ctx context.Context, req Request) ([]map[string]any, Window, error) {
	at := req.At
	if at.IsZero() {
		at = g.Now()
	}
	window, err := WindowFor(at)
	if err != nil {
		return nil, Window{}, err
	}

	rows, err := g.Plans.ItemsForWeek(ctx, req.StudentID, req.ClassID, window.Start)
	if err != nil {
		return nil, Window{}, err
	}
	if len(rows) > 0 {
		return rows, window, nil
	}

	items, err := g.build(ctx, req, window)
	if err != nil {
		return nil, Window{}, err
	}
	if len(items) > 0 {
		if err := g.Plans.CreateWeek(ctx, items); err != nil {
			// A concurrent generate may have won the unique index race;
			// if rows now exist, they are the week.
			existing, readErr := g.Plans.ItemsForWeek(ctx, req.StudentID, req.ClassID, window.Start)
			if readErr == nil && len(existing) > 0 {
				return existing, window, nil
			}
			return nil, Window{}, err
		}
	}

	rows, err = g.Plans.ItemsForWeek(ctx, req.StudentID, req.ClassID, window.Start)
	if err != nil {
		return nil, Window{}, err
	}
	return rows, window, nil
}

func (g *Generator) build(ctx context.Context, req Request, window Window) ([]store.NewItem, error) {
	newDays := req.NewDays
	if newDays <= 0 {
		newDays = DefaultNewDays
	}
	midDays := req.MidDays
	if midDays <= newDays {
		midDays = DefaultMidDays
	}
	lookback := req.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	topics, err := g.Coverage.CoveredTopics(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		// Nothing taught yet: an empty plan, not an error.
		return nil, nil
	}

	candidates, err := g.Questions.Candidates(ctx, topics)
	if err != nil {
		return nil, err
	}

	weekStart, err := time.Parse("2006-01-02", window.Start)
	if err != nil {
		return nil, fmt.Errorf("parse week start: %w", err)
	}
	cutoff := weekStart.AddDate(0, 0, -7*lookback).Format("2006-01-02")
	recent, err := g.Plans.RecentQuestionIDs(ctx, req.StudentID, req.ClassID, cutoff)
	if err != nil {
		return nil, err
	}

	// Group candidates by the composite target key.
	groups := make(map[string][]store.Candidate)
	for _, c := range candidates {
		if recent[c.ID] {
			continue
		}
		key := plan.Key(c.Difficulty, bucketFor(c.CreatedAt, weekStart, newDays, midDays))
		groups[key] = append(groups[key], c)
	}

	// Seeded per student-week so a replayed generate picks identically.
	rng := rand.New(rand.NewSource(seed(req.StudentID, req.ClassID, window.Start)))

	keys := make([]string, 0, len(req.Targets))
	for k := range req.Targets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	targetsJSON, err := json.Marshal(req.Targets)
	if err != nil {
		return nil, fmt.Errorf("marshal targets: %w", err)
	}

	weekID := uuid.NewString()
	var items []store.NewItem
	order := 0
	for _, key := range keys {
		want := req.Targets[key]
		pool := groups[key]
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		if want > len(pool) {
			want = len(pool)
		}
		for _, c := range pool[:want] {
			_, bucket := splitKey(key)
			items = append(items, store.NewItem{
				ItemID:      uuid.NewString(),
				WeekID:      weekID,
				StudentID:   req.StudentID,
				ClassID:     req.ClassID,
				QuestionID:  c.ID,
				WeekStart:   window.Start,
				WeekEnd:     window.End,
				Bucket:      bucket,
				Difficulty:  c.Difficulty,
				OrderIndex:  order,
				TargetsJSON: string(targetsJSON),
			})
			order++
		}
	}
	return items, nil
}

// bucketFor classifies a question by its age at the start of the week.
func bucketFor(createdAt, weekStart time.Time, newDays, midDays int) plan.Bucket {
	age := int(weekStart.Sub(createdAt).Hours() / 24)
	switch {
	case age <= newDays:
		return plan.BucketNew
	case age <= midDays:
		return plan.BucketMid
	default:
		return plan.BucketOld
	}
}

func splitKey(key string) (difficulty, bucket string) {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

func seed(studentID, classID, weekStart string) int64 {
	h := fnv.New64a()
	h.Write([]byte(studentID))
	h.Write([]byte{'|'})
	h.Write([]byte(classID))
	h.Write([]byte{'|'})
	h.Write([]byte(weekStart))
	return int64(h.Sum64())
}
