package qgen

import (
	"strings"

	"github.com/hbennett/revisio/internal/question"
)

// StructuralValidator checks that required fields are present, within
// length limits, and consistent with the question type.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(d *Draft, input GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(d.Prompt) == "" {
		return fail("prompt is empty")
	}
	if len(d.Prompt) > 2000 {
		return fail("prompt exceeds 2000 characters")
	}
	if d.Type != input.Type {
		return fail("type does not match the requested type")
	}
	switch d.Difficulty {
	case "easy", "medium", "hard":
	default:
		return fail("difficulty must be easy, medium, or hard")
	}

	switch question.Type(d.Type) {
	case question.TypeMultipleChoice:
		if len(d.Options) != 4 {
			return fail("multiple_choice needs exactly 4 options")
		}
		if d.CorrectIndex < 0 || d.CorrectIndex >= len(d.Options) {
			return fail("correct_index out of range")
		}
		seen := map[string]bool{}
		for _, opt := range d.Options {
			key := strings.ToLower(strings.TrimSpace(opt))
			if key == "" {
				return fail("empty option")
			}
			if seen[key] {
				return fail("duplicate options")
			}
			seen[key] = true
		}

	case question.TypeTrueFalse:
		if len(d.Options) != 0 {
			return fail("true_false must not carry options")
		}

	case question.TypeFillBlank:
		blanks := strings.Count(d.Prompt, "___")
		if blanks == 0 {
			return fail("fill_blank prompt has no ___ markers")
		}
		if len(d.AcceptedAnswers) != blanks {
			return fail("accepted_answers count does not match blanks")
		}

	case question.TypeMatching:
		if len(d.PairsLeft) != len(d.PairsRight) {
			return fail("matching columns differ in length")
		}
		if len(d.PairsLeft) < 3 || len(d.PairsLeft) > 6 {
			return fail("matching needs 3 to 6 pairs")
		}

	case question.TypeShortAnswer, question.TypeEssay:
		if strings.TrimSpace(d.ModelAnswer) == "" {
			return fail("free-response needs a model answer")
		}

	case question.TypeCode, question.TypeAlgorithm, question.TypeSQL:
		if strings.TrimSpace(d.ModelAnswer) == "" {
			return fail("code question needs a model answer")
		}
		if strings.TrimSpace(d.Language) == "" {
			return fail("code question needs a language")
		}

	default:
		return fail("unknown question type")
	}

	return nil
}

// DuplicateValidator rejects drafts whose prompt already appears in the
// generation context.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(d *Draft, input GenerateInput) *ValidationError {
	norm := normalizePrompt(d.Prompt)
	for _, prior := range input.PriorPrompts {
		if normalizePrompt(prior) == norm {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "prompt duplicates an existing question",
				Retryable: true,
			}
		}
	}
	return nil
}

func normalizePrompt(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
