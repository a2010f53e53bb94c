package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbennett/revisio/internal/llm"
	"github.com/hbennett/revisio/internal/qgen"
	"github.com/hbennett/revisio/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic-code>",
	Short: "Generate draft questions for a topic with the configured LLM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qtype, _ := cmd.Flags().GetString("type")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		llmCfg, ok := llm.DiscoverConfig()
		if !ok {
			return fmt.Errorf("no LLM provider configured; set REVISIO_LLM_PROVIDER and an API key")
		}
		ctx := context.Background()
		provider, err := llm.NewProvider(ctx, llmCfg, s.LLMEvents())
		if err != nil {
			return fmt.Errorf("init llm provider: %w", err)
		}

		svc := qgen.NewService(qgen.New(provider, qgen.DefaultConfig()), s.Questions(), qgen.DefaultConfig())
		questions, err := svc.GenerateBatch(ctx, args[0], qtype, difficulty, count)
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		fmt.Printf("Saved %d draft question(s) for topic %s:\n", len(questions), args[0])
		for _, q := range questions {
			fmt.Printf("  %s  [%s/%s]  %s\n", q.ID, q.Type, q.Difficulty, q.Prompt)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("type", "t", "multiple_choice", "Question type (multiple_choice, true_false, fill_blank, matching, short_answer, essay, code)")
	generateCmd.Flags().StringP("difficulty", "d", "medium", "Difficulty (easy, medium, hard)")
	generateCmd.Flags().IntP("count", "n", 5, "Number of questions to generate")
}
