package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hbennett/revisio/internal/export"
	"github.com/hbennett/revisio/internal/stats"
	"github.com/hbennett/revisio/internal/store"
	"github.com/hbennett/revisio/internal/weekly"
)

var exportCmd = &cobra.Command{
	Use:   "export <class-id>",
	Short: "Export a class progress workbook (.xlsx)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weekStart, _ := cmd.Flags().GetString("week")
		out, _ := cmd.Flags().GetString("out")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		loc, err := time.LoadLocation(weekly.Zone)
		if err != nil {
			return fmt.Errorf("load timezone: %w", err)
		}
		if weekStart == "" {
			win, err := weekly.WindowFor(time.Now().In(loc))
			if err != nil {
				return fmt.Errorf("resolve current week: %w", err)
			}
			weekStart = win.Start
		}
		if out == "" {
			out = fmt.Sprintf("%s-%s.xlsx", args[0], weekStart)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		exporter := export.NewClassExporter(s, stats.NewService(s.Answers(), loc))
		if err := exporter.WriteWorkbook(context.Background(), f, args[0], weekStart); err != nil {
			os.Remove(out)
			return fmt.Errorf("write workbook: %w", err)
		}

		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("week", "w", "", "Week start date (YYYY-MM-DD, Monday); defaults to the current week")
	exportCmd.Flags().StringP("out", "o", "", "Output file path; defaults to <class>-<week>.xlsx")
}
