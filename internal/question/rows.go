package question

import "database/sql"

// Row mirrors a questions table row before typing. Detail rows are joined
// separately per question type.
type Row struct {
	ID         string         `db:"id"`
	TopicCode  string         `db:"topic_code"`
	Type       string         `db:"type"`
	Prompt     string         `db:"prompt"`
	Difficulty string         `db:"difficulty"`
	TFAnswer   sql.NullBool   `db:"tf_answer"`
	Language   sql.NullString `db:"language"`
}

// OptionRow is one multiple-choice option.
type OptionRow struct {
	QuestionID string `db:"question_id"`
	Idx        int    `db:"idx"`
	Text       string `db:"text"`
	Correct    bool   `db:"correct"`
}

// GapRow is one accepted answer for a fill-in-blank position.
type GapRow struct {
	QuestionID string `db:"question_id"`
	Idx        int    `db:"idx"`
	Answer     string `db:"answer"`
}

// PairRow is one left/right pairing for a matching question.
type PairRow struct {
	QuestionID string `db:"question_id"`
	Idx        int    `db:"idx"`
	Left       string `db:"left_text"`
	Right      string `db:"right_text"`
}

// ModelRow holds the model answer and rubric for free-response types.
type ModelRow struct {
	QuestionID string         `db:"question_id"`
	Answer     string         `db:"answer"`
	Rubric     sql.NullString `db:"rubric"`
}

// Details bundles the joined detail rows for one question.
type Details struct {
	Options []OptionRow
	Gaps    []GapRow
	Pairs   []PairRow
	Model   *ModelRow
}

// Build maps a storage row plus its details into a typed Question,
// branching on the question type to pick the relevant fields. Unrecognized
// types degrade to short_answer; missing details leave zero values rather
// than failing, matching the permissive treatment of external rows
// elsewhere in the practice flow.
func Build(row Row, d Details) Question {
	q := Question{
		ID:         row.ID,
		TopicCode:  row.TopicCode,
		Type:       ParseType(row.Type),
		Prompt:     row.Prompt,
		Difficulty: row.Difficulty,
	}

	switch q.Type {
	case TypeMultipleChoice:
		q.CorrectIndex = -1
		for _, opt := range d.Options {
			q.Options = append(q.Options, opt.Text)
			if opt.Correct {
				q.CorrectIndex = len(q.Options) - 1
			}
		}

	case TypeTrueFalse:
		if row.TFAnswer.Valid {
			q.TrueFalseAnswer = row.TFAnswer.Bool
		}

	case TypeFillBlank:
		for _, g := range d.Gaps {
			q.AcceptedAnswers = append(q.AcceptedAnswers, g.Answer)
		}

	case TypeMatching:
		for _, p := range d.Pairs {
			q.Pairs = append(q.Pairs, Pair{Left: p.Left, Right: p.Right})
		}
		if d.Model != nil {
			q.ModelAnswer = d.Model.Answer
		}

	default: // short_answer, essay, code, algorithm, sql
		if d.Model != nil {
			q.ModelAnswer = d.Model.Answer
			if d.Model.Rubric.Valid {
				q.Rubric = d.Model.Rubric.String
			}
		}
		if row.Language.Valid {
			q.Language = row.Language.String
		}
	}

	return q
}
