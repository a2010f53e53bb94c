package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// AnswerRepo handles the student answer log. Answer IDs are generated by the
// caller (UUIDs) so a retried submission inserts at most once.
type AnswerRepo struct {
	db *sqlx.DB
}

// Answer is one stored student response.
type Answer struct {
	ID             string          `db:"id"`
	StudentID      string          `db:"student_id"`
	QuestionID     string          `db:"question_id"`
	Response       string          `db:"response"`
	AutoScore      sql.NullFloat64 `db:"auto_score"`
	SelfScore      sql.NullString  `db:"self_score"`
	SelfAssessed   bool            `db:"self_assessed"`
	TeacherScore   sql.NullString  `db:"teacher_score"`
	TeacherComment sql.NullString  `db:"teacher_comment"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// Insert stores a new answer. autoScore is nil for question types without
// automatic scoring.
func (r *AnswerRepo) Insert(ctx context.Context, id, studentID, questionID, response string, autoScore *float64) error {
	var score any
	if autoScore != nil {
		score = *autoScore
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO answers (id, student_id, question_id, response, auto_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, studentID, questionID, response, score, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

// Get fetches one answer by ID.
func (r *AnswerRepo) Get(ctx context.Context, id string) (Answer, error) {
	var a Answer
	err := r.db.GetContext(ctx, &a, `SELECT * FROM answers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Answer{}, ErrNotFound
	}
	if err != nil {
		return Answer{}, fmt.Errorf("select answer: %w", err)
	}
	return a, nil
}

// SetSelfAssessment records the student's green/amber/red judgement on an
// answer. Re-assessment overwrites the previous value.
func (r *AnswerRepo) SetSelfAssessment(ctx context.Context, id, score string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE answers SET self_score = ?, self_assessed = true, updated_at = ?
		WHERE id = ?`,
		score, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("set self assessment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTeacherGrade records a teacher override score and optional comment.
func (r *AnswerRepo) SetTeacherGrade(ctx context.Context, id, score, comment string) error {
	var c any
	if comment != "" {
		c = comment
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE answers SET teacher_score = ?, teacher_comment = ?, updated_at = ?
		WHERE id = ?`,
		score, c, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("set teacher grade: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ActivityTimes returns the creation times of all of a student's answers,
// newest first. This is the raw input to streak calculation.
func (r *AnswerRepo) ActivityTimes(ctx context.Context, studentID string) ([]time.Time, error) {
	var times []time.Time
	err := r.db.SelectContext(ctx, &times, `
		SELECT created_at FROM answers WHERE student_id = ? ORDER BY created_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("select activity times: %w", err)
	}
	return times, nil
}

// SelfScores returns the student's recorded self-assessment scores, most
// recent first, capped at limit (0 means all).
func (r *AnswerRepo) SelfScores(ctx context.Context, studentID string, limit int) ([]string, error) {
	q := `SELECT self_score FROM answers
		WHERE student_id = ? AND self_score IS NOT NULL
		ORDER BY created_at DESC`
	args := []any{studentID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	var scores []string
	if err := r.db.SelectContext(ctx, &scores, q, args...); err != nil {
		return nil, fmt.Errorf("select self scores: %w", err)
	}
	return scores, nil
}

// TopicAccuracyRow is the per-topic auto-score aggregate for one student.
type TopicAccuracyRow struct {
	TopicCode string  `db:"topic_code"`
	Answered  int     `db:"answered"`
	MeanScore float64 `db:"mean_score"`
}

// TopicAccuracy aggregates auto-scored answers per topic, for the stats
// view. Only objective question types carry an auto score.
func (r *AnswerRepo) TopicAccuracy(ctx context.Context, studentID string) ([]TopicAccuracyRow, error) {
	var out []TopicAccuracyRow
	err := r.db.SelectContext(ctx, &out, `
		SELECT q.topic_code AS topic_code,
		       COUNT(*) AS answered,
		       AVG(a.auto_score) AS mean_score
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.student_id = ? AND a.auto_score IS NOT NULL
		GROUP BY q.topic_code
		ORDER BY q.topic_code`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("select topic accuracy: %w", err)
	}
	return out, nil
}
