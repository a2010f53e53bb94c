package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PlanRepo handles weekly plan item storage. Reads come back as raw maps so
// the practice flow's normalizer owns all type coercion; writes are typed.
type PlanRepo struct {
	db *sqlx.DB
}

// NewItem is one plan row to insert when a week is generated.
type NewItem struct {
	ItemID      string
	WeekID      string
	StudentID   string
	ClassID     string
	QuestionID  string
	WeekStart   string
	WeekEnd     string
	Bucket      string
	Difficulty  string
	OrderIndex  int
	TargetsJSON string
}

// ItemsForWeek returns the raw plan rows for a student-week in stored
// order. Rows are deliberately untyped; callers normalize them.
func (r *PlanRepo) ItemsForWeek(ctx context.Context, studentID, classID, weekStart string) ([]map[string]any, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT item_id, week_id, question_id, bucket, difficulty, order_index,
		       status, skip_count, target_counts
		FROM plan_items
		WHERE student_id = ? AND class_id = ? AND week_start = ?
		ORDER BY order_index`,
		studentID, classID, weekStart,
	)
	if err != nil {
		return nil, fmt.Errorf("select plan items: %w", err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		m := map[string]any{}
		if err := rows.MapScan(m); err != nil {
			return nil, fmt.Errorf("scan plan item: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan items: %w", err)
	}
	return out, nil
}

// HasWeek reports whether a plan already exists for the student-week.
func (r *PlanRepo) HasWeek(ctx context.Context, studentID, classID, weekStart string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM plan_items
		WHERE student_id = ? AND class_id = ? AND week_start = ?`,
		studentID, classID, weekStart,
	)
	if err != nil {
		return false, fmt.Errorf("count plan items: %w", err)
	}
	return n > 0, nil
}

// CreateWeek inserts a freshly generated week's items in one transaction.
// The UNIQUE(student_id, class_id, week_start, question_id) constraint makes
// a concurrent double-generate fail whole rather than interleave.
func (r *PlanRepo) CreateWeek(ctx context.Context, items []NewItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, it := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO plan_items (item_id, week_id, student_id, class_id, question_id,
				week_start, week_end, bucket, difficulty, order_index, target_counts)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ItemID, it.WeekID, it.StudentID, it.ClassID, it.QuestionID,
			it.WeekStart, it.WeekEnd, it.Bucket, it.Difficulty, it.OrderIndex, it.TargetsJSON,
		)
		if err != nil {
			return fmt.Errorf("insert plan item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// MarkAnswered records a successful submission against an open item,
// linking the stored answer. Skipped items become answered when revisited;
// an already-answered item is left untouched and reported as ErrNotFound so
// callers never regress answered state.
func (r *PlanRepo) MarkAnswered(ctx context.Context, itemID, answerID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE plan_items SET status = 'answered', answer_id = ?, completed_at = ?
		WHERE item_id = ? AND status IN ('pending', 'skipped')`,
		answerID, at.UTC(), itemID,
	)
	if err != nil {
		return fmt.Errorf("mark answered: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkSkipped moves a pending item to skipped and counts the skip. Skipping
// an already-skipped item only bumps the counter.
func (r *PlanRepo) MarkSkipped(ctx context.Context, itemID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE plan_items
		SET status = 'skipped', skip_count = skip_count + 1
		WHERE item_id = ? AND status IN ('pending', 'skipped')`,
		itemID,
	)
	if err != nil {
		return fmt.Errorf("mark skipped: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// WeekSummary is one student's aggregate over a stored week, for teacher
// views and exports.
type WeekSummary struct {
	StudentID string `db:"student_id"`
	Total     int    `db:"total"`
	Answered  int    `db:"answered"`
	Skipped   int    `db:"skipped"`
}

// SummariesForClass aggregates plan completion per student for one
// class-week.
func (r *PlanRepo) SummariesForClass(ctx context.Context, classID, weekStart string) ([]WeekSummary, error) {
	var out []WeekSummary
	err := r.db.SelectContext(ctx, &out, `
		SELECT student_id,
		       COUNT(*) AS total,
		       SUM(CASE WHEN status = 'answered' THEN 1 ELSE 0 END) AS answered,
		       SUM(CASE WHEN status = 'skipped' THEN 1 ELSE 0 END) AS skipped
		FROM plan_items
		WHERE class_id = ? AND week_start = ?
		GROUP BY student_id
		ORDER BY student_id`,
		classID, weekStart,
	)
	if err != nil {
		return nil, fmt.Errorf("select week summaries: %w", err)
	}
	return out, nil
}

// RecentQuestionIDs returns question IDs assigned to the student in weeks
// starting on or after the cutoff, so generation avoids near repeats.
func (r *PlanRepo) RecentQuestionIDs(ctx context.Context, studentID, classID, cutoffWeekStart string) (map[string]bool, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, `
		SELECT DISTINCT question_id FROM plan_items
		WHERE student_id = ? AND class_id = ? AND week_start >= ?`,
		studentID, classID, cutoffWeekStart,
	)
	if err != nil {
		return nil, fmt.Errorf("select recent questions: %w", err)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}
