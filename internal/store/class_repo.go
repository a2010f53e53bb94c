package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ClassRepo handles teacher classes and roster membership.
type ClassRepo struct {
	db *sqlx.DB
}

// Class is one teaching group.
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Student is one learner on a roster.
type Student struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Email     sql.NullString `db:"email" json:"-"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// Create stores a new class.
func (r *ClassRepo) Create(ctx context.Context, id, name, teacherID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO classes (id, name, teacher_id) VALUES (?, ?, ?)`,
		id, name, teacherID,
	)
	if err != nil {
		return fmt.Errorf("insert class: %w", err)
	}
	return nil
}

// Get fetches one class.
func (r *ClassRepo) Get(ctx context.Context, id string) (Class, error) {
	var c Class
	err := r.db.GetContext(ctx, &c, `SELECT * FROM classes WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Class{}, ErrNotFound
	}
	if err != nil {
		return Class{}, fmt.Errorf("select class: %w", err)
	}
	return c, nil
}

// All lists every class.
func (r *ClassRepo) All(ctx context.Context) ([]Class, error) {
	var out []Class
	err := r.db.SelectContext(ctx, &out, `SELECT * FROM classes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("select classes: %w", err)
	}
	return out, nil
}

// ForTeacher lists a teacher's classes.
func (r *ClassRepo) ForTeacher(ctx context.Context, teacherID string) ([]Class, error) {
	var out []Class
	err := r.db.SelectContext(ctx, &out, `
		SELECT * FROM classes WHERE teacher_id = ? ORDER BY created_at`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("select classes: %w", err)
	}
	return out, nil
}

// UpsertStudent stores or renames a student record.
func (r *ClassRepo) UpsertStudent(ctx context.Context, id, name, email string) error {
	var e any
	if email != "" {
		e = email
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO students (id, name, email) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email`,
		id, name, e,
	)
	if err != nil {
		return fmt.Errorf("upsert student: %w", err)
	}
	return nil
}

// Enrol adds a student to a class roster. Already enrolled is not an error.
func (r *ClassRepo) Enrol(ctx context.Context, studentID, classID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO enrolments (student_id, class_id) VALUES (?, ?)
		ON CONFLICT(student_id, class_id) DO NOTHING`,
		studentID, classID,
	)
	if err != nil {
		return fmt.Errorf("enrol student: %w", err)
	}
	return nil
}

// Roster lists the students enrolled in a class, by name.
func (r *ClassRepo) Roster(ctx context.Context, classID string) ([]Student, error) {
	var out []Student
	err := r.db.SelectContext(ctx, &out, `
		SELECT s.* FROM students s
		JOIN enrolments e ON e.student_id = s.id
		WHERE e.class_id = ?
		ORDER BY s.name`,
		classID,
	)
	if err != nil {
		return nil, fmt.Errorf("select roster: %w", err)
	}
	return out, nil
}

// Enrolled reports whether the student is on the class roster.
func (r *ClassRepo) Enrolled(ctx context.Context, studentID, classID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM enrolments WHERE student_id = ? AND class_id = ?`,
		studentID, classID,
	)
	if err != nil {
		return false, fmt.Errorf("count enrolment: %w", err)
	}
	return n > 0, nil
}
