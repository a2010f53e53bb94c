package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// LLMEventRepo records one row per model call for usage inspection and
// debugging. Events are append-only and pruned by a background job.
type LLMEventRepo struct {
	db *sqlx.DB
}

// LLMEvent is one logged model call.
type LLMEvent struct {
	ID           int64     `db:"id"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMS    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	CreatedAt    time.Time `db:"created_at"`
}

// Append logs one model call.
func (r *LLMEventRepo) Append(ctx context.Context, ev LLMEvent) error {
	var errMsg any
	if ev.ErrorMessage != "" {
		errMsg = ev.ErrorMessage
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events (provider, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Provider, ev.Model, ev.Purpose, ev.InputTokens, ev.OutputTokens,
		ev.LatencyMS, ev.Success, errMsg,
	)
	if err != nil {
		return fmt.Errorf("insert llm event: %w", err)
	}
	return nil
}

// Recent returns the newest events, capped at limit.
func (r *LLMEventRepo) Recent(ctx context.Context, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, provider, model, purpose, input_tokens, output_tokens,
		       latency_ms, success, COALESCE(error_message, '') AS error_message, created_at
		FROM llm_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		var ev LLMEvent
		if err := rows.StructScan(&ev); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// LLMUsage aggregates token counts per model.
type LLMUsage struct {
	Model        string `db:"model"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	AvgLatencyMS int64  `db:"avg_latency_ms"`
}

// UsageByModel sums token usage grouped by model, most-used first.
func (r *LLMEventRepo) UsageByModel(ctx context.Context) ([]LLMUsage, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT model, COUNT(*) AS calls,
		       COALESCE(SUM(input_tokens), 0) AS input_tokens,
		       COALESCE(SUM(output_tokens), 0) AS output_tokens,
		       COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0) AS avg_latency_ms
		FROM llm_events GROUP BY model ORDER BY calls DESC`)
	if err != nil {
		return nil, fmt.Errorf("select llm usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.StructScan(&u); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Prune deletes events older than the cutoff, returning the count removed.
func (r *LLMEventRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM llm_events WHERE created_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune llm events: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
