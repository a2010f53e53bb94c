// Package session drives one student's practice through a weekly plan: an
// explicit state value plus transition methods, so every mutation is a
// plain function from the current state to the next.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hbennett/revisio/internal/plan"
	"github.com/hbennett/revisio/internal/question"
	"github.com/hbennett/revisio/internal/stats"
	"github.com/hbennett/revisio/internal/weekly"
)

// PlanWriter mutates plan item status in storage.
type PlanWriter interface {
	MarkAnswered(ctx context.Context, itemID, answerID string, at time.Time) error
	MarkSkipped(ctx context.Context, itemID string) error
}

// AnswerWriter persists answers and self-assessments.
type AnswerWriter interface {
	Insert(ctx context.Context, id, studentID, questionID, response string, autoScore *float64) error
	SetSelfAssessment(ctx context.Context, id, score string) error
}

// QuestionLoader bulk-loads question content.
type QuestionLoader interface {
	ByIDs(ctx context.Context, ids []string) (map[string]question.Question, error)
}

// WeekSource produces (or returns) the frozen plan rows for a student-week.
type WeekSource interface {
	GetOrCreate(ctx context.Context, req weekly.Request) ([]map[string]any, weekly.Window, error)
}

// State is the whole of a practice session. Transition methods mutate it in
// place; nothing else does.
type State struct {
	StudentID string
	ClassID   string
	Window    weekly.Window

	Items     []plan.Item
	Questions map[string]question.Question
	Progress  plan.Snapshot

	Pos        int
	HasCurrent bool

	// Last submission, surfaced for feedback.
	LastAnswerID string
	LastScore    *float64

	// An answer awaiting the student's green/amber/red judgement. While one
	// is open, week completion is deferred rather than reported early.
	OpenAnswerID      string
	CompletionPending bool
	Completed         bool
}

// Current returns the question under the cursor.
func (st *State) Current() (question.Question, plan.Item, bool) {
	if !st.HasCurrent || st.Pos < 0 || st.Pos >= len(st.Items) {
		return question.Question{}, plan.Item{}, false
	}
	it := st.Items[st.Pos]
	q, ok := st.Questions[it.QuestionID]
	if !ok {
		return question.Question{}, it, false
	}
	return q, it, true
}

// Controller wires the transitions to storage.
type Controller struct {
	Weeks     WeekSource
	Plans     PlanWriter
	Answers   AnswerWriter
	Questions QuestionLoader
	Targets   plan.TargetCounts
	Now       func() time.Time
}

// LoadWeek fetches or creates the student's plan for the current week and
// builds a fresh session state positioned at the first actionable item.
func (c *Controller) LoadWeek(ctx context.Context, studentID, classID string) (*State, error) {
	rows, window, err := c.Weeks.GetOrCreate(ctx, weekly.Request{
		StudentID: studentID,
		ClassID:   classID,
		Targets:   c.Targets,
	})
	if err != nil {
		return nil, err
	}

	items := plan.Dedupe(plan.Normalize(rows))

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.QuestionID)
	}
	questions, err := c.Questions.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	st := &State{
		StudentID: studentID,
		ClassID:   classID,
		Window:    window,
		Items:     items,
		Questions: questions,
		Progress:  plan.Recompute(items),
		Pos:       plan.StartIndex(items),
	}
	st.HasCurrent = len(items) > 0 && st.Items[st.Pos].Status != plan.StatusAnswered
	if !st.HasCurrent {
		st.Completed = len(items) > 0
	}
	return st, nil
}

// SubmitAnswer persists the student's response to the current question and
// only then marks the plan item answered. If the answer insert fails the
// item stays open, so an answered item always has a stored answer behind it.
// No current question makes this a no-op.
func (c *Controller) SubmitAnswer(ctx context.Context, st *State, response string) error {
	q, it, ok := st.Current()
	if !ok {
		return nil
	}

	answerID := uuid.NewString()
	var scorePtr *float64
	if q.Type.Objective() {
		if score, scored := question.AutoScore(&q, response); scored {
			scorePtr = &score
		}
	}

	if err := c.Answers.Insert(ctx, answerID, st.StudentID, q.ID, response, scorePtr); err != nil {
		return err
	}
	if err := c.Plans.MarkAnswered(ctx, it.ItemID, answerID, c.now()); err != nil {
		return err
	}

	st.Items[st.Pos].Status = plan.StatusAnswered
	st.Progress = plan.Recompute(st.Items)
	st.LastAnswerID = answerID
	st.LastScore = scorePtr
	if q.Type.RequiresSelfAssessment() {
		st.OpenAnswerID = answerID
	}
	return nil
}

// SelfAssess records the student's judgement on the open answer and, if the
// week already ran out of items while the judgement was outstanding,
// completes it now. No open answer makes this a no-op.
func (c *Controller) SelfAssess(ctx context.Context, st *State, score stats.Score) error {
	if st.OpenAnswerID == "" {
		return nil
	}
	if err := c.Answers.SetSelfAssessment(ctx, st.OpenAnswerID, string(score)); err != nil {
		return err
	}
	st.OpenAnswerID = ""
	if st.CompletionPending {
		st.CompletionPending = false
		st.Completed = true
		st.HasCurrent = false
	}
	return nil
}

// Skip marks the current item skipped and moves on. Skips are counted, so a
// question dodged repeatedly stays visible to the teacher.
func (c *Controller) Skip(ctx context.Context, st *State) error {
	_, it, ok := st.Current()
	if !ok {
		return nil
	}
	if err := c.Plans.MarkSkipped(ctx, it.ItemID); err != nil {
		return err
	}
	if st.Items[st.Pos].Status == plan.StatusPending {
		st.Items[st.Pos].Status = plan.StatusSkipped
	}
	st.Items[st.Pos].SkipCount++
	st.Progress = plan.Recompute(st.Items)
	return c.Advance(ctx, st)
}

// Advance moves the cursor to the next actionable item. When none remains,
// the week is complete unless a self-assessment is still open, in which
// case completion waits for SelfAssess.
func (c *Controller) Advance(_ context.Context, st *State) error {
	st.LastAnswerID = ""
	st.LastScore = nil

	next, ok := plan.NextIndex(st.Pos, st.Items)
	if ok {
		st.Pos = next
		st.HasCurrent = true
		return nil
	}

	st.HasCurrent = false
	if st.OpenAnswerID != "" {
		st.CompletionPending = true
		return nil
	}
	st.Completed = true
	return nil
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
