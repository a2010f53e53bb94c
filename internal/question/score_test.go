package question

import "testing"

func TestAutoScore_MultipleChoice(t *testing.T) {
	q := &Question{
		Type:         TypeMultipleChoice,
		Options:      []string{"Compiler", "Interpreter", "Assembler", "Linker"},
		CorrectIndex: 1,
	}

	tests := []struct {
		response string
		want     float64
	}{
		{"Interpreter", 1},
		{"interpreter ", 1},
		{"2", 1}, // 1-based index
		{"1", 0},
		{"Compiler", 0},
		{"", 0},
	}
	for _, tt := range tests {
		got, ok := AutoScore(q, tt.response)
		if !ok {
			t.Fatalf("AutoScore(%q): expected objective type", tt.response)
		}
		if got != tt.want {
			t.Errorf("AutoScore(%q) = %v, want %v", tt.response, got, tt.want)
		}
	}
}

func TestAutoScore_TrueFalse(t *testing.T) {
	q := &Question{Type: TypeTrueFalse, TrueFalseAnswer: true}

	for response, want := range map[string]float64{
		"true": 1, "T": 1, "yes": 1,
		"false": 0, "n": 0, "maybe": 0,
	} {
		got, ok := AutoScore(q, response)
		if !ok {
			t.Fatalf("AutoScore(%q): expected objective type", response)
		}
		if got != want {
			t.Errorf("AutoScore(%q) = %v, want %v", response, got, want)
		}
	}
}

func TestAutoScore_FillBlank_PartialCredit(t *testing.T) {
	q := &Question{
		Type:            TypeFillBlank,
		AcceptedAnswers: []string{"binary", "denary"},
	}

	got, _ := AutoScore(q, "binary\nhexadecimal")
	if got != 0.5 {
		t.Errorf("AutoScore = %v, want 0.5", got)
	}

	got, _ = AutoScore(q, "Binary\ndenary")
	if got != 1 {
		t.Errorf("AutoScore = %v, want 1", got)
	}
}

func TestAutoScore_SubjectiveTypes(t *testing.T) {
	for _, typ := range []Type{TypeShortAnswer, TypeEssay, TypeCode, TypeAlgorithm, TypeSQL, TypeMatching} {
		q := &Question{Type: typ}
		if _, ok := AutoScore(q, "anything"); ok {
			t.Errorf("AutoScore for %s: expected no auto score", typ)
		}
		if !typ.RequiresSelfAssessment() {
			t.Errorf("%s should require self-assessment", typ)
		}
	}
}

func TestParseType_Default(t *testing.T) {
	if got := ParseType("drawing"); got != TypeShortAnswer {
		t.Errorf("ParseType(drawing) = %s, want short_answer", got)
	}
	if got := ParseType("sql"); got != TypeSQL {
		t.Errorf("ParseType(sql) = %s, want sql", got)
	}
}

func TestBuild_MultipleChoice(t *testing.T) {
	row := Row{ID: "q1", TopicCode: "3.3.1", Type: "multiple_choice", Prompt: "Which base is hexadecimal?", Difficulty: "low"}
	d := Details{Options: []OptionRow{
		{Text: "2", Correct: false},
		{Text: "10", Correct: false},
		{Text: "16", Correct: true},
		{Text: "8", Correct: false},
	}}

	q := Build(row, d)
	if q.Type != TypeMultipleChoice {
		t.Fatalf("Type = %s, want multiple_choice", q.Type)
	}
	if q.CorrectIndex != 2 {
		t.Errorf("CorrectIndex = %d, want 2", q.CorrectIndex)
	}
	if len(q.Options) != 4 {
		t.Errorf("len(Options) = %d, want 4", len(q.Options))
	}
}

func TestBuild_MissingDetailsDegrade(t *testing.T) {
	q := Build(Row{ID: "q2", Type: "multiple_choice"}, Details{})
	if q.CorrectIndex != -1 {
		t.Errorf("CorrectIndex = %d, want -1 for missing options", q.CorrectIndex)
	}

	q = Build(Row{ID: "q3", Type: "essay"}, Details{})
	if q.ModelAnswer != "" {
		t.Errorf("ModelAnswer = %q, want empty", q.ModelAnswer)
	}
}
