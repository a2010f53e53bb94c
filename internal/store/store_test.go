package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hbennett/revisio/internal/question"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedStudentClass(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	if err := s.Classes().UpsertStudent(ctx, "stu-1", "Alex", ""); err != nil {
		t.Fatalf("UpsertStudent() error = %v", err)
	}
	if err := s.Classes().Create(ctx, "cls-1", "11X/Cs1", "tch-1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Classes().Enrol(ctx, "stu-1", "cls-1"); err != nil {
		t.Fatalf("Enrol() error = %v", err)
	}
}

func TestQuestionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	q := &question.Question{
		ID:           "q-mc-1",
		TopicCode:    "3.3.1",
		Type:         question.TypeMultipleChoice,
		Prompt:       "How many bits in a byte?",
		Difficulty:   "easy",
		Options:      []string{"4", "8", "16", "32"},
		CorrectIndex: 1,
	}
	if err := s.Questions().Insert(ctx, q, false); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := s.Questions().Get(ctx, "q-mc-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Type != question.TypeMultipleChoice {
		t.Errorf("Type = %q, want %q", got.Type, question.TypeMultipleChoice)
	}
	if len(got.Options) != 4 {
		t.Fatalf("len(Options) = %d, want 4", len(got.Options))
	}
	if got.CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", got.CorrectIndex)
	}
}

func TestQuestionDraftExcludedFromCandidates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	published := &question.Question{ID: "q-1", TopicCode: "3.1.1", Type: question.TypeShortAnswer, Prompt: "Define abstraction.", Difficulty: "easy"}
	draft := &question.Question{ID: "q-2", TopicCode: "3.1.1", Type: question.TypeShortAnswer, Prompt: "Define decomposition.", Difficulty: "easy"}
	if err := s.Questions().Insert(ctx, published, false); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Questions().Insert(ctx, draft, true); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := s.Questions().Candidates(ctx, []string{"3.1.1"})
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "q-1" {
		t.Fatalf("Candidates() = %+v, want only q-1", got)
	}

	if err := s.Questions().Publish(ctx, "q-2"); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	got, err = s.Questions().Candidates(ctx, []string{"3.1.1"})
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Candidates() after publish = %d rows, want 2", len(got))
	}
}

func TestPlanWeekLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedStudentClass(t, s)

	q := &question.Question{ID: "q-1", TopicCode: "3.1.1", Type: question.TypeTrueFalse, Prompt: "A linear search checks every item.", Difficulty: "easy", TrueFalseAnswer: true}
	if err := s.Questions().Insert(ctx, q, false); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	items := []NewItem{{
		ItemID: "it-1", WeekID: "wk-1", StudentID: "stu-1", ClassID: "cls-1",
		QuestionID: "q-1", WeekStart: "2026-08-31", WeekEnd: "2026-09-06",
		Bucket: "new", Difficulty: "easy", OrderIndex: 0,
		TargetsJSON: `{"easy:new":1}`,
	}}
	if err := s.Plans().CreateWeek(ctx, items); err != nil {
		t.Fatalf("CreateWeek() error = %v", err)
	}

	ok, err := s.Plans().HasWeek(ctx, "stu-1", "cls-1", "2026-08-31")
	if err != nil {
		t.Fatalf("HasWeek() error = %v", err)
	}
	if !ok {
		t.Fatal("HasWeek() = false, want true")
	}

	rows, err := s.Plans().ItemsForWeek(ctx, "stu-1", "cls-1", "2026-08-31")
	if err != nil {
		t.Fatalf("ItemsForWeek() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	// Answer must exist before the item can be linked to it.
	if err := s.Answers().Insert(ctx, "ans-1", "stu-1", "q-1", "true", nil); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Plans().MarkAnswered(ctx, "it-1", "ans-1", time.Now()); err != nil {
		t.Fatalf("MarkAnswered() error = %v", err)
	}

	// Answered items never regress.
	if err := s.Plans().MarkAnswered(ctx, "it-1", "ans-1", time.Now()); err != ErrNotFound {
		t.Errorf("MarkAnswered() on answered item = %v, want ErrNotFound", err)
	}
	if err := s.Plans().MarkSkipped(ctx, "it-1"); err != ErrNotFound {
		t.Errorf("MarkSkipped() on answered item = %v, want ErrNotFound", err)
	}
}

func TestPlanMarkSkippedCountsRepeats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedStudentClass(t, s)

	q := &question.Question{ID: "q-1", TopicCode: "3.1.1", Type: question.TypeShortAnswer, Prompt: "Explain a binary search.", Difficulty: "medium"}
	if err := s.Questions().Insert(ctx, q, false); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	items := []NewItem{{
		ItemID: "it-1", WeekID: "wk-1", StudentID: "stu-1", ClassID: "cls-1",
		QuestionID: "q-1", WeekStart: "2026-08-31", WeekEnd: "2026-09-06",
		Bucket: "new", Difficulty: "medium", OrderIndex: 0,
		TargetsJSON: `{"medium:new":1}`,
	}}
	if err := s.Plans().CreateWeek(ctx, items); err != nil {
		t.Fatalf("CreateWeek() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.Plans().MarkSkipped(ctx, "it-1"); err != nil {
			t.Fatalf("MarkSkipped() error = %v", err)
		}
	}

	rows, err := s.Plans().ItemsForWeek(ctx, "stu-1", "cls-1", "2026-08-31")
	if err != nil {
		t.Fatalf("ItemsForWeek() error = %v", err)
	}
	var count int64
	switch v := rows[0]["skip_count"].(type) {
	case int64:
		count = v
	default:
		t.Fatalf("skip_count has type %T", v)
	}
	if count != 2 {
		t.Errorf("skip_count = %d, want 2", count)
	}
}

func TestPlanWeekUniqueQuestionPerWeek(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedStudentClass(t, s)

	q := &question.Question{ID: "q-1", TopicCode: "3.1.1", Type: question.TypeShortAnswer, Prompt: "State a use of a stack.", Difficulty: "easy"}
	if err := s.Questions().Insert(ctx, q, false); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	mk := func(itemID string) []NewItem {
		return []NewItem{{
			ItemID: itemID, WeekID: "wk-1", StudentID: "stu-1", ClassID: "cls-1",
			QuestionID: "q-1", WeekStart: "2026-08-31", WeekEnd: "2026-09-06",
			Bucket: "new", Difficulty: "easy", OrderIndex: 0,
			TargetsJSON: `{"easy:new":1}`,
		}}
	}
	if err := s.Plans().CreateWeek(ctx, mk("it-1")); err != nil {
		t.Fatalf("CreateWeek() error = %v", err)
	}
	if err := s.Plans().CreateWeek(ctx, mk("it-2")); err == nil {
		t.Error("CreateWeek() with duplicate question in week succeeded, want constraint error")
	}
}

func TestAnswerSelfAssessmentAndGrade(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedStudentClass(t, s)

	q := &question.Question{ID: "q-1", TopicCode: "3.1.1", Type: question.TypeEssay, Prompt: "Discuss the impact of caching.", Difficulty: "hard"}
	if err := s.Questions().Insert(ctx, q, false); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Answers().Insert(ctx, "ans-1", "stu-1", "q-1", "Caching reduces latency...", nil); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := s.Answers().SetSelfAssessment(ctx, "ans-1", "amber"); err != nil {
		t.Fatalf("SetSelfAssessment() error = %v", err)
	}
	if err := s.Answers().SetTeacherGrade(ctx, "ans-1", "green", "Good detail"); err != nil {
		t.Fatalf("SetTeacherGrade() error = %v", err)
	}

	got, err := s.Answers().Get(ctx, "ans-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.SelfAssessed || got.SelfScore.String != "amber" {
		t.Errorf("self assessment = (%v, %q), want (true, amber)", got.SelfAssessed, got.SelfScore.String)
	}
	if got.TeacherScore.String != "green" {
		t.Errorf("TeacherScore = %q, want green", got.TeacherScore.String)
	}

	scores, err := s.Answers().SelfScores(ctx, "stu-1", 0)
	if err != nil {
		t.Fatalf("SelfScores() error = %v", err)
	}
	if len(scores) != 1 || scores[0] != "amber" {
		t.Errorf("SelfScores() = %v, want [amber]", scores)
	}
}

func TestAnswerDuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedStudentClass(t, s)

	q := &question.Question{ID: "q-1", TopicCode: "3.1.1", Type: question.TypeShortAnswer, Prompt: "Define a protocol.", Difficulty: "easy"}
	if err := s.Questions().Insert(ctx, q, false); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Answers().Insert(ctx, "ans-1", "stu-1", "q-1", "a", nil); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Answers().Insert(ctx, "ans-1", "stu-1", "q-1", "a", nil); err == nil {
		t.Error("Insert() with duplicate ID succeeded, want error")
	}
}

func TestCoverageUpsertAndCoveredTopics(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedStudentClass(t, s)

	if err := s.Coverage().Upsert(ctx, "cov-1", "cls-1", "3.1.1", CoverageCovered, "2026-08-24", ""); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := s.Coverage().Upsert(ctx, "cov-2", "cls-1", "3.2.1", CoveragePlanned, "", ""); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	topics, err := s.Coverage().CoveredTopics(ctx, "cls-1")
	if err != nil {
		t.Fatalf("CoveredTopics() error = %v", err)
	}
	if len(topics) != 1 || topics[0] != "3.1.1" {
		t.Errorf("CoveredTopics() = %v, want [3.1.1]", topics)
	}

	// Same class-topic updates in place.
	if err := s.Coverage().Upsert(ctx, "cov-3", "cls-1", "3.2.1", CoverageRevision, "2026-08-28", "recap"); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}
	entries, err := s.Coverage().ForClass(ctx, "cls-1")
	if err != nil {
		t.Fatalf("ForClass() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
}

func TestLLMEventAppendAndPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ev := LLMEvent{Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "question_generation", InputTokens: 900, OutputTokens: 400, LatencyMS: 1200, Success: true}
	if err := s.LLMEvents().Append(ctx, ev); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := s.LLMEvents().Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 || got[0].Purpose != "question_generation" {
		t.Fatalf("Recent() = %+v, want one question_generation event", got)
	}

	n, err := s.LLMEvents().Prune(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
}
