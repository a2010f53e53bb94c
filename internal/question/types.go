// Package question defines the typed question model the practice flow works
// with, and the mapping from storage rows into that model.
package question

// Type identifies how a question is asked and answered.
type Type string

const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeTrueFalse      Type = "true_false"
	TypeFillBlank      Type = "fill_blank"
	TypeMatching       Type = "matching"
	TypeShortAnswer    Type = "short_answer"
	TypeEssay          Type = "essay"
	TypeCode           Type = "code"
	TypeAlgorithm      Type = "algorithm"
	TypeSQL            Type = "sql"
)

// knownTypes is the closed set of question types.
var knownTypes = map[Type]bool{
	TypeMultipleChoice: true,
	TypeTrueFalse:      true,
	TypeFillBlank:      true,
	TypeMatching:       true,
	TypeShortAnswer:    true,
	TypeEssay:          true,
	TypeCode:           true,
	TypeAlgorithm:      true,
	TypeSQL:            true,
}

// ParseType coerces an arbitrary string to a Type, defaulting to
// short_answer for anything unrecognized.
func ParseType(s string) Type {
	t := Type(s)
	if knownTypes[t] {
		return t
	}
	return TypeShortAnswer
}

// RequiresSelfAssessment reports whether a question of type t lacks
// automatic scoring and needs a student green/amber/red judgement before
// the item counts as fully resolved.
func (t Type) RequiresSelfAssessment() bool {
	switch t {
	case TypeShortAnswer, TypeEssay, TypeCode, TypeAlgorithm, TypeSQL, TypeMatching:
		return true
	}
	return false
}

// Objective reports whether the answer can be auto-scored.
func (t Type) Objective() bool {
	switch t {
	case TypeMultipleChoice, TypeTrueFalse, TypeFillBlank:
		return true
	}
	return false
}

// Pair is one left/right pairing in a matching question.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is a fully-typed question ready for the practice flow.
// Type-specific fields are populated only for the matching type.
type Question struct {
	ID         string `json:"id"`
	TopicCode  string `json:"topic_code"`
	Type       Type   `json:"type"`
	Prompt     string `json:"prompt"`
	Difficulty string `json:"difficulty"`

	// Multiple choice.
	Options      []string `json:"options,omitempty"`
	CorrectIndex int      `json:"correct_index,omitempty"` // index into Options

	// True/false.
	TrueFalseAnswer bool `json:"true_false_answer,omitempty"`

	// Fill in the blank: accepted answers, one per blank position.
	AcceptedAnswers []string `json:"accepted_answers,omitempty"`

	// Matching.
	Pairs []Pair `json:"pairs,omitempty"`

	// Free-response types: worked model answer and mark-scheme rubric.
	ModelAnswer string `json:"model_answer,omitempty"`
	Rubric      string `json:"rubric,omitempty"`

	// Code/algorithm/SQL.
	Language string `json:"language,omitempty"`
}
