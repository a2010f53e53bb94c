package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbennett/revisio/internal/store"
)

// Runs the export subcommand without -w, so the week start falls back to
// the current Monday-anchored window.
func TestExportCommandDefaultWeek(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	outPath := filepath.Join(dir, "out.xlsx")

	s, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	ctx := context.Background()
	if err := s.Classes().Create(ctx, "cls-1", "11X/Cs1", "tch-1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Classes().UpsertStudent(ctx, "stu-1", "Alex", ""); err != nil {
		t.Fatalf("UpsertStudent() error = %v", err)
	}
	if err := s.Classes().Enrol(ctx, "stu-1", "cls-1"); err != nil {
		t.Fatalf("Enrol() error = %v", err)
	}
	if err := s.Coverage().Upsert(ctx, "cov-1", "cls-1", "3.1.1", store.CoverageCovered, "2026-08-24", ""); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	rootCmd.SetArgs([]string{"export", "cls-1", "--db", dbPath, "-o", outPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	// An xlsx file is a zip archive.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output is not a workbook, starts with %q", data[:min(4, len(data))])
	}
}

func TestExportCommandUnknownClass(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	s, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	outPath := filepath.Join(dir, "out.xlsx")
	rootCmd.SetArgs([]string{"export", "nope", "--db", dbPath, "-o", outPath})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("Execute() = nil error, want not found")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("partial output left behind: stat err = %v", err)
	}
}
