package qgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced GCSE Computer Science teacher writing exam-style practice questions.

Rules:
- Generate questions for the given specification topic, question type, and difficulty.
- Use plain ASCII text. No LaTeX, no Unicode symbols. Write code in fenced style using the stated language.
- Questions must be self-contained: a student should not need the topic name to understand what is being asked.
- Match the requested question type exactly and fill only its fields:
  - multiple_choice: exactly 4 options, exactly one correct, distractors reflecting common misconceptions.
  - true_false: a single clear statement and its truth value.
  - fill_blank: mark each blank with ___ in the prompt and give one accepted answer per blank, in order.
  - matching: 3 to 6 term/definition pairs aligned by index.
  - short_answer, essay: include a model answer and a mark-scheme style rubric.
  - code, algorithm, sql: include the language, a model answer, and a rubric.
- Difficulty: easy questions test recall, medium test application, hard test analysis or multi-step reasoning.
- Do not repeat any question from the "already in the bank" list.`

// buildUserMessage constructs the user message from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s %s\n", input.TopicCode, input.TopicName)
	if input.TopicSummary != "" {
		fmt.Fprintf(&b, "Topic summary: %s\n", input.TopicSummary)
	}
	fmt.Fprintf(&b, "Question type: %s\n", input.Type)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", input.Count)

	b.WriteString("\nAlready in the bank for this topic:\n")
	b.WriteString(buildDedup(input.PriorPrompts, cfg.MaxPriorPrompts))

	return b.String()
}

// buildDedup formats prior prompts for the prompt, respecting the max
// limit. Returns "None" if there are no prior prompts.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}

	// Keep only the most recent N.
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, p := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
