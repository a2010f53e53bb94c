package question

import (
	"strconv"
	"strings"
)

// AutoScore scores an objective question's response, returning a score in
// [0, 1] and whether the type supports auto-scoring at all.
//
// Normalization rules:
// - Whitespace is trimmed, comparison is case-insensitive
// - Multiple choice accepts the option text or its 1-based index
// - True/false accepts true/false, t/f, yes/no
// - Fill-in-blank scores each blank independently (partial credit)
func AutoScore(q *Question, response string) (float64, bool) {
	switch q.Type {
	case TypeMultipleChoice:
		return boolScore(checkMultipleChoice(q, response)), true
	case TypeTrueFalse:
		got, ok := parseBool(response)
		if !ok {
			return 0, true
		}
		return boolScore(got == q.TrueFalseAnswer), true
	case TypeFillBlank:
		return scoreBlanks(q, response), true
	}
	return 0, false
}

func boolScore(correct bool) float64 {
	if correct {
		return 1
	}
	return 0
}

func checkMultipleChoice(q *Question, response string) bool {
	response = strings.TrimSpace(response)
	if response == "" || q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return false
	}

	// Match by 1-based index.
	if idx, err := strconv.Atoi(response); err == nil && idx >= 1 && idx <= len(q.Options) {
		return idx-1 == q.CorrectIndex
	}

	// Match by option text.
	return strings.EqualFold(response, strings.TrimSpace(q.Options[q.CorrectIndex]))
}

func parseBool(response string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "true", "t", "yes", "y":
		return true, true
	case "false", "f", "no", "n":
		return false, true
	}
	return false, false
}

// scoreBlanks compares each submitted blank against the accepted answer at
// the same position. Responses carry one value per blank separated by
// newlines. The score is the fraction of blanks answered correctly.
func scoreBlanks(q *Question, response string) float64 {
	if len(q.AcceptedAnswers) == 0 {
		return 0
	}

	given := strings.Split(response, "\n")
	correct := 0
	for i, want := range q.AcceptedAnswers {
		if i >= len(given) {
			break
		}
		if strings.EqualFold(strings.TrimSpace(given[i]), strings.TrimSpace(want)) {
			correct++
		}
	}
	return float64(correct) / float64(len(q.AcceptedAnswers))
}
