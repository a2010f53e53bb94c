package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CoverageRepo tracks which curriculum topics each class has been taught.
// Plan generation draws only from covered topics.
type CoverageRepo struct {
	db *sqlx.DB
}

// CoverageEntry is one class-topic coverage record.
type CoverageEntry struct {
	ID        string         `db:"id" json:"id"`
	ClassID   string         `db:"class_id" json:"class_id"`
	TopicCode string         `db:"topic_code" json:"topic_code"`
	Status    string         `db:"status" json:"status"`
	CoveredOn sql.NullString `db:"covered_on" json:"-"`
	Notes     sql.NullString `db:"notes" json:"-"`
}

// Coverage statuses.
const (
	CoveragePlanned  = "planned"
	CoverageCovered  = "covered"
	CoverageRevision = "revision"
)

// Upsert records or updates the coverage status of one topic for a class.
// coveredOn is an ISO date string, empty for planned topics.
func (r *CoverageRepo) Upsert(ctx context.Context, id, classID, topicCode, status, coveredOn, notes string) error {
	var on, n any
	if coveredOn != "" {
		on = coveredOn
	}
	if notes != "" {
		n = notes
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coverage (id, class_id, topic_code, status, covered_on, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(class_id, topic_code) DO UPDATE SET
			status = excluded.status,
			covered_on = excluded.covered_on,
			notes = excluded.notes`,
		id, classID, topicCode, status, on, n,
	)
	if err != nil {
		return fmt.Errorf("upsert coverage: %w", err)
	}
	return nil
}

// ForClass lists a class's coverage records by topic code.
func (r *CoverageRepo) ForClass(ctx context.Context, classID string) ([]CoverageEntry, error) {
	var out []CoverageEntry
	err := r.db.SelectContext(ctx, &out, `
		SELECT * FROM coverage WHERE class_id = ? ORDER BY topic_code`, classID)
	if err != nil {
		return nil, fmt.Errorf("select coverage: %w", err)
	}
	return out, nil
}

// CoveredTopics returns the topic codes a class has covered or is revising.
// Planned topics are excluded so students aren't assigned untaught material.
func (r *CoverageRepo) CoveredTopics(ctx context.Context, classID string) ([]string, error) {
	var codes []string
	err := r.db.SelectContext(ctx, &codes, `
		SELECT topic_code FROM coverage
		WHERE class_id = ? AND status IN (?, ?)
		ORDER BY topic_code`,
		classID, CoverageCovered, CoverageRevision,
	)
	if err != nil {
		return nil, fmt.Errorf("select covered topics: %w", err)
	}
	return codes, nil
}
