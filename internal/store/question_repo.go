package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hbennett/revisio/internal/question"
)

// QuestionRepo handles question storage, including the per-type detail
// tables.
type QuestionRepo struct {
	db *sqlx.DB
}

// Candidate is the slim projection the weekly generator buckets on.
type Candidate struct {
	ID         string    `db:"id"`
	TopicCode  string    `db:"topic_code"`
	Difficulty string    `db:"difficulty"`
	CreatedAt  time.Time `db:"created_at"`
}

// Insert stores a question and its detail rows in one transaction.
// Draft questions are excluded from plan generation until published.
func (r *QuestionRepo) Insert(ctx context.Context, q *question.Question, draft bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var tfAnswer any
	if q.Type == question.TypeTrueFalse {
		tfAnswer = q.TrueFalseAnswer
	}
	var language any
	if q.Language != "" {
		language = q.Language
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO questions (id, topic_code, type, prompt, difficulty, tf_answer, language, draft)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.TopicCode, string(q.Type), q.Prompt, q.Difficulty, tfAnswer, language, draft,
	)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}

	for i, opt := range q.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO question_options (question_id, idx, text, correct)
			VALUES (?, ?, ?, ?)`,
			q.ID, i, opt, i == q.CorrectIndex,
		)
		if err != nil {
			return fmt.Errorf("insert option: %w", err)
		}
	}

	for i, gap := range q.AcceptedAnswers {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO question_gaps (question_id, idx, answer) VALUES (?, ?, ?)`,
			q.ID, i, gap,
		)
		if err != nil {
			return fmt.Errorf("insert gap: %w", err)
		}
	}

	for i, pair := range q.Pairs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO question_pairs (question_id, idx, left_text, right_text)
			VALUES (?, ?, ?, ?)`,
			q.ID, i, pair.Left, pair.Right,
		)
		if err != nil {
			return fmt.Errorf("insert pair: %w", err)
		}
	}

	if q.ModelAnswer != "" {
		var rubric any
		if q.Rubric != "" {
			rubric = q.Rubric
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO question_models (question_id, answer, rubric) VALUES (?, ?, ?)`,
			q.ID, q.ModelAnswer, rubric,
		)
		if err != nil {
			return fmt.Errorf("insert model answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ByIDs bulk-fetches questions with their joined detail rows and maps them
// into typed questions. Unknown IDs are silently absent from the result.
func (r *QuestionRepo) ByIDs(ctx context.Context, ids []string) (map[string]question.Question, error) {
	result := make(map[string]question.Question, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q, args, err := sqlx.In(`
		SELECT id, topic_code, type, prompt, difficulty, tf_answer, language
		FROM questions WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []question.Row
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}

	for _, row := range rows {
		details, err := r.details(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		result[row.ID] = question.Build(row, details)
	}
	return result, nil
}

// Get fetches one question by ID.
func (r *QuestionRepo) Get(ctx context.Context, id string) (question.Question, error) {
	var row question.Row
	err := r.db.GetContext(ctx, &row, `
		SELECT id, topic_code, type, prompt, difficulty, tf_answer, language
		FROM questions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return question.Question{}, ErrNotFound
	}
	if err != nil {
		return question.Question{}, fmt.Errorf("select question: %w", err)
	}
	details, err := r.details(ctx, id)
	if err != nil {
		return question.Question{}, err
	}
	return question.Build(row, details), nil
}

func (r *QuestionRepo) details(ctx context.Context, id string) (question.Details, error) {
	var d question.Details

	if err := r.db.SelectContext(ctx, &d.Options, `
		SELECT question_id, idx, text, correct FROM question_options
		WHERE question_id = ? ORDER BY idx`, id); err != nil {
		return d, fmt.Errorf("select options: %w", err)
	}
	if err := r.db.SelectContext(ctx, &d.Gaps, `
		SELECT question_id, idx, answer FROM question_gaps
		WHERE question_id = ? ORDER BY idx`, id); err != nil {
		return d, fmt.Errorf("select gaps: %w", err)
	}
	if err := r.db.SelectContext(ctx, &d.Pairs, `
		SELECT question_id, idx, left_text, right_text FROM question_pairs
		WHERE question_id = ? ORDER BY idx`, id); err != nil {
		return d, fmt.Errorf("select pairs: %w", err)
	}

	var model question.ModelRow
	err := r.db.GetContext(ctx, &model, `
		SELECT question_id, answer, rubric FROM question_models
		WHERE question_id = ?`, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return d, fmt.Errorf("select model answer: %w", err)
	default:
		d.Model = &model
	}
	return d, nil
}

// Candidates returns published questions for the given topics, for plan
// generation. Empty topics means the whole catalogue.
func (r *QuestionRepo) Candidates(ctx context.Context, topicCodes []string) ([]Candidate, error) {
	var out []Candidate
	if len(topicCodes) == 0 {
		err := r.db.SelectContext(ctx, &out, `
			SELECT id, topic_code, difficulty, created_at FROM questions
			WHERE NOT draft ORDER BY created_at`)
		if err != nil {
			return nil, fmt.Errorf("select candidates: %w", err)
		}
		return out, nil
	}

	q, args, err := sqlx.In(`
		SELECT id, topic_code, difficulty, created_at FROM questions
		WHERE NOT draft AND topic_code IN (?) ORDER BY created_at`, topicCodes)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	return out, nil
}

// PromptsForTopic returns existing prompts for a topic (drafts included),
// newest first, capped at limit (0 means all). Generation feeds these back
// to the model to avoid duplicates.
func (r *QuestionRepo) PromptsForTopic(ctx context.Context, topicCode string, limit int) ([]string, error) {
	q := `SELECT prompt FROM questions WHERE topic_code = ? ORDER BY created_at DESC`
	args := []any{topicCode}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	var prompts []string
	if err := r.db.SelectContext(ctx, &prompts, q, args...); err != nil {
		return nil, fmt.Errorf("select prompts: %w", err)
	}
	return prompts, nil
}

// Publish clears the draft flag on a generated question.
func (r *QuestionRepo) Publish(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE questions SET draft = false WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("publish question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
