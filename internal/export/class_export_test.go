package export

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hbennett/revisio/internal/question"
	"github.com/hbennett/revisio/internal/stats"
	"github.com/hbennett/revisio/internal/store"
)

func TestWriteWorkbook(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()
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
	// Lexical order would put 3.1.10 between 3.1.1 and 3.1.2.
	for i, code := range []string{"3.1.1", "3.1.10", "3.1.2"} {
		id := fmt.Sprintf("cov-%d", i+1)
		if err := s.Coverage().Upsert(ctx, id, "cls-1", code, store.CoverageCovered, "2026-08-24", ""); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	for _, q := range []*question.Question{
		{ID: "q-1", TopicCode: "3.1.1", Type: question.TypeTrueFalse, Prompt: "A stack is LIFO.", Difficulty: "easy", TrueFalseAnswer: true},
		{ID: "q-2", TopicCode: "3.1.1", Type: question.TypeTrueFalse, Prompt: "A queue is LIFO.", Difficulty: "easy"},
	} {
		if err := s.Questions().Insert(ctx, q, false); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	items := []store.NewItem{
		{
			ItemID: "it-1", WeekID: "wk-1", StudentID: "stu-1", ClassID: "cls-1",
			QuestionID: "q-1", WeekStart: "2026-08-31", WeekEnd: "2026-09-06",
			Bucket: "new", Difficulty: "easy", OrderIndex: 0, TargetsJSON: `{"easy:new":2}`,
		},
		{
			ItemID: "it-2", WeekID: "wk-1", StudentID: "stu-1", ClassID: "cls-1",
			QuestionID: "q-2", WeekStart: "2026-08-31", WeekEnd: "2026-09-06",
			Bucket: "new", Difficulty: "easy", OrderIndex: 1, TargetsJSON: `{"easy:new":2}`,
		},
	}
	if err := s.Plans().CreateWeek(ctx, items); err != nil {
		t.Fatalf("CreateWeek() error = %v", err)
	}
	score := 1.0
	if err := s.Answers().Insert(ctx, "ans-1", "stu-1", "q-1", "true", &score); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Plans().MarkAnswered(ctx, "it-1", "ans-1", time.Now()); err != nil {
		t.Fatalf("MarkAnswered() error = %v", err)
	}
	if err := s.Plans().MarkSkipped(ctx, "it-2"); err != nil {
		t.Fatalf("MarkSkipped() error = %v", err)
	}

	exporter := NewClassExporter(s, stats.NewService(s.Answers(), time.UTC))
	var buf bytes.Buffer
	if err := exporter.WriteWorkbook(ctx, &buf, "cls-1", "2026-08-31"); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue("Students", "A2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if name != "Alex" {
		t.Errorf("Students!A2 = %q, want Alex", name)
	}
	answered, err := f.GetCellValue("Students", "B2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if answered != "1" {
		t.Errorf("Students!B2 = %q, want 1", answered)
	}
	skipped, err := f.GetCellValue("Students", "D2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if skipped != "1" {
		t.Errorf("Students!D2 = %q, want 1", skipped)
	}
	completion, err := f.GetCellValue("Students", "E2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if completion != "50" {
		t.Errorf("Students!E2 = %q, want 50", completion)
	}

	// Coverage rows come out in numeric-segment order.
	for i, want := range []string{"3.1.1", "3.1.2", "3.1.10"} {
		cell := fmt.Sprintf("A%d", i+2)
		topic, err := f.GetCellValue("Coverage", cell)
		if err != nil {
			t.Fatalf("GetCellValue() error = %v", err)
		}
		if topic != want {
			t.Errorf("Coverage!%s = %q, want %q", cell, topic, want)
		}
	}
}

func TestWriteWorkbookUnknownClass(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	exporter := NewClassExporter(s, stats.NewService(s.Answers(), time.UTC))
	var buf bytes.Buffer
	if err := exporter.WriteWorkbook(context.Background(), &buf, "nope", "2026-08-31"); err == nil {
		t.Fatal("WriteWorkbook() = nil error, want not found")
	}
}
