package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hbennett/revisio/internal/stats"
	"github.com/hbennett/revisio/internal/store"
	"github.com/hbennett/revisio/internal/weekly"
)

var statsCmd = &cobra.Command{
	Use:   "stats <student-id>",
	Short: "Show a student's streaks, score distribution and topic accuracy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		summary, err := stats.NewService(s.Answers(), loc).Summary(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("build summary: %w", err)
		}

		fmt.Printf("Student %s\n", summary.StudentID)
		fmt.Printf("  Streak:       %d day(s) current, %d best\n",
			summary.Streak.Current, summary.Streak.Best)
		fmt.Printf("  Self scores:  %d%% green / %d%% amber / %d%% red (%d total)\n",
			summary.Distribution.GreenPercent, summary.Distribution.AmberPercent,
			summary.Distribution.RedPercent, summary.Distribution.Total)

		if len(summary.Topics) == 0 {
			fmt.Println("  No graded answers yet.")
			return nil
		}
		fmt.Println("  Topic accuracy:")
		for _, t := range summary.Topics {
			fmt.Printf("    %-8s  %3.0f%%  (%d attempted)\n", t.TopicCode, t.Accuracy*100, t.Attempts)
		}
		return nil
	},
}
