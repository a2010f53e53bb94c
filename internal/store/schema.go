package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// createSchema creates the tables if they don't exist. Statements run in
// dependency order so foreign keys resolve.
func createSchema(db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS classes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			teacher_id TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS enrolments (
			student_id TEXT NOT NULL REFERENCES students(id),
			class_id TEXT NOT NULL REFERENCES classes(id),
			enrolled_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (student_id, class_id)
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			topic_code TEXT NOT NULL,
			type TEXT NOT NULL,
			prompt TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'medium',
			tf_answer BOOLEAN,
			language TEXT,
			draft BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions(topic_code)`,
		`CREATE TABLE IF NOT EXISTS question_options (
			question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			text TEXT NOT NULL,
			correct BOOLEAN NOT NULL DEFAULT false,
			PRIMARY KEY (question_id, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS question_gaps (
			question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			answer TEXT NOT NULL,
			PRIMARY KEY (question_id, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS question_pairs (
			question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			left_text TEXT NOT NULL,
			right_text TEXT NOT NULL,
			PRIMARY KEY (question_id, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS question_models (
			question_id TEXT PRIMARY KEY REFERENCES questions(id) ON DELETE CASCADE,
			answer TEXT NOT NULL,
			rubric TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS plan_items (
			item_id TEXT PRIMARY KEY,
			week_id TEXT NOT NULL,
			student_id TEXT NOT NULL REFERENCES students(id),
			class_id TEXT NOT NULL REFERENCES classes(id),
			question_id TEXT NOT NULL REFERENCES questions(id),
			week_start TEXT NOT NULL,
			week_end TEXT NOT NULL,
			bucket TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			order_index INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			target_counts TEXT NOT NULL,
			answer_id TEXT,
			completed_at TIMESTAMP,
			skip_count INTEGER NOT NULL DEFAULT 0,
			UNIQUE (student_id, class_id, week_start, question_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plan_items_week
			ON plan_items(student_id, class_id, week_start)`,
		`CREATE TABLE IF NOT EXISTS answers (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES students(id),
			question_id TEXT NOT NULL REFERENCES questions(id),
			response TEXT NOT NULL,
			auto_score REAL,
			self_score TEXT,
			self_assessed BOOLEAN NOT NULL DEFAULT false,
			teacher_score TEXT,
			teacher_comment TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_student ON answers(student_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS coverage (
			id TEXT PRIMARY KEY,
			class_id TEXT NOT NULL REFERENCES classes(id),
			topic_code TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'planned',
			covered_on TEXT,
			notes TEXT,
			UNIQUE (class_id, topic_code)
		)`,
		`CREATE TABLE IF NOT EXISTS llm_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL,
			error_message TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
