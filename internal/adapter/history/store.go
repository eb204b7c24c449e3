// Package history persists briefing advisory outcomes to a local SQLite
// database so dispatchers can review how route verdicts evolved across
// forecast cycles.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/flightwx/briefing-engine/internal/briefing"
	"github.com/flightwx/briefing-engine/internal/observability"
)

const schema = `
CREATE TABLE IF NOT EXISTS briefings (
	id           TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	result_json  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS advisories (
	briefing_id TEXT NOT NULL REFERENCES briefings(id),
	advisory_id TEXT NOT NULL,
	status      TEXT NOT NULL,
	detail      TEXT NOT NULL,
	PRIMARY KEY (briefing_id, advisory_id)
);
CREATE INDEX IF NOT EXISTS idx_advisories_advisory_status
	ON advisories(advisory_id, status);
`

// Store writes briefing results to SQLite. Safe for concurrent use; SQLite
// serializes writers internally.
type Store struct {
	db      *sql.DB
	metrics *observability.Metrics
}

// Open creates or opens the history database at path and applies the schema.
func Open(path string, metrics *observability.Metrics) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db, metrics: metrics}, nil
}

// SaveResult stores the full result document plus one row per advisory
// verdict for querying without JSON extraction.
func (s *Store) SaveResult(ctx context.Context, result *briefing.Result) error {
	if err := s.saveResult(ctx, result); err != nil {
		s.metrics.HistorySaves.WithLabelValues("error").Inc()
		return err
	}
	s.metrics.HistorySaves.WithLabelValues("success").Inc()
	return nil
}

func (s *Store) saveResult(ctx context.Context, result *briefing.Result) error {
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("serialize result for history: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO briefings (id, generated_at, result_json) VALUES (?, ?, ?)`,
		result.ID, result.GeneratedAt.Format(time.RFC3339), string(doc))
	if err != nil {
		return fmt.Errorf("insert briefing row: %w", err)
	}

	for _, adv := range result.Advisories {
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO advisories (briefing_id, advisory_id, status, detail) VALUES (?, ?, ?, ?)`,
			result.ID, adv.AdvisoryID, string(adv.Status), adv.Detail)
		if err != nil {
			return fmt.Errorf("insert advisory row %q: %w", adv.AdvisoryID, err)
		}
	}

	return tx.Commit()
}

// Recent returns the most recent briefing results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]briefing.Result, error) {
	if limit < 1 {
		limit = 1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT result_json FROM briefings ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent briefings: %w", err)
	}
	defer rows.Close()

	var out []briefing.Result
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan briefing row: %w", err)
		}
		var r briefing.Result
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, fmt.Errorf("decode stored briefing: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
