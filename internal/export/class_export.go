// Package export writes teacher-facing class workbooks.
package export

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/hbennett/revisio/internal/curriculum"
	"github.com/hbennett/revisio/internal/stats"
	"github.com/hbennett/revisio/internal/store"
)

// ClassExporter builds one workbook per class: a Students sheet with plan
// completion, streaks, and score distribution, and a Coverage sheet with
// the class's topic status.
type ClassExporter struct {
	Classes  *store.ClassRepo
	Plans    *store.PlanRepo
	Coverage *store.CoverageRepo
	Stats    *stats.Service
}

// NewClassExporter wires the exporter to storage.
func NewClassExporter(s *store.Store, statsSvc *stats.Service) *ClassExporter {
	return &ClassExporter{
		Classes:  s.Classes(),
		Plans:    s.Plans(),
		Coverage: s.Coverage(),
		Stats:    statsSvc,
	}
}

// WriteWorkbook writes the class workbook for one week to w.
func (e *ClassExporter) WriteWorkbook(ctx context.Context, w io.Writer, classID, weekStart string) error {
	cls, err := e.Classes.Get(ctx, classID)
	if err != nil {
		return err
	}
	roster, err := e.Classes.Roster(ctx, classID)
	if err != nil {
		return err
	}
	summaries, err := e.Plans.SummariesForClass(ctx, classID, weekStart)
	if err != nil {
		return err
	}
	byStudent := make(map[string]store.WeekSummary, len(summaries))
	for _, s := range summaries {
		byStudent[s.StudentID] = s
	}

	f := excelize.NewFile()
	defer f.Close()

	students := "Students"
	f.SetSheetName("Sheet1", students)
	header := []any{
		"Student", "Answered", "Assigned", "Skipped", "Completion %",
		"Current streak", "Best streak", "Green %", "Amber %", "Red %",
	}
	if err := f.SetSheetRow(students, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, stu := range roster {
		sum := byStudent[stu.ID]
		completion := 0
		if sum.Total > 0 {
			completion = sum.Answered * 100 / sum.Total
		}

		st, err := e.Stats.Summary(ctx, stu.ID)
		if err != nil {
			return err
		}

		row := []any{
			stu.Name, sum.Answered, sum.Total, sum.Skipped, completion,
			st.Streak.Current, st.Streak.Best,
			st.Distribution.GreenPercent, st.Distribution.AmberPercent, st.Distribution.RedPercent,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(students, cell, &row); err != nil {
			return fmt.Errorf("write student row: %w", err)
		}
	}

	if err := e.writeCoverageSheet(ctx, f, classID); err != nil {
		return err
	}

	title := fmt.Sprintf("%s — week of %s", cls.Name, weekStart)
	f.SetDocProps(&excelize.DocProperties{Title: title})

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (e *ClassExporter) writeCoverageSheet(ctx context.Context, f *excelize.File, classID string) error {
	entries, err := e.Coverage.ForClass(ctx, classID)
	if err != nil {
		return err
	}
	// The store orders lexically, which puts "3.10" before "3.2".
	sort.Slice(entries, func(i, j int) bool {
		return curriculum.CompareCodes(entries[i].TopicCode, entries[j].TopicCode) < 0
	})

	sheet := "Coverage"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create coverage sheet: %w", err)
	}
	header := []any{"Topic", "Title", "Status", "Covered on", "Notes"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write coverage header: %w", err)
	}

	for i, entry := range entries {
		title := ""
		if t, err := curriculum.GetTopic(entry.TopicCode); err == nil {
			title = t.Title
		}
		row := []any{
			entry.TopicCode, title, entry.Status,
			entry.CoveredOn.String, entry.Notes.String,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write coverage row: %w", err)
		}
	}
	return nil
}
