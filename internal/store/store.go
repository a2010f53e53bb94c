// Package store is the SQLite persistence layer: connection management,
// schema bootstrap, and the repositories the domain packages depend on.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

func init() {
	// modernc registers as "sqlite", which sqlx doesn't know a bindvar
	// style for out of the box.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas and bootstraps the schema.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Questions returns the question repository.
func (s *Store) Questions() *QuestionRepo { return &QuestionRepo{db: s.db} }

// Plans returns the plan item repository.
func (s *Store) Plans() *PlanRepo { return &PlanRepo{db: s.db} }

// Answers returns the answer repository.
func (s *Store) Answers() *AnswerRepo { return &AnswerRepo{db: s.db} }

// Classes returns the class/enrolment repository.
func (s *Store) Classes() *ClassRepo { return &ClassRepo{db: s.db} }

// Coverage returns the curriculum coverage repository.
func (s *Store) Coverage() *CoverageRepo { return &CoverageRepo{db: s.db} }

// LLMEvents returns the LLM request event repository.
func (s *Store) LLMEvents() *LLMEventRepo { return &LLMEventRepo{db: s.db} }

// applyPragmas configures SQLite for service use.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. REVISIO_DB environment variable
// 2. $XDG_DATA_HOME/revisio/revisio.db
// 3. ~/.local/share/revisio/revisio.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("REVISIO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "revisio", "revisio.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
