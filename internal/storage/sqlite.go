package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/repoquant/repoquant/pkg/models"
)

const createAnalysesTable = `
CREATE TABLE IF NOT EXISTS analyses (
	analysis_id  TEXT PRIMARY KEY,
	repo_url     TEXT,
	branch       TEXT,
	collected_at TEXT NOT NULL,
	scoring      TEXT NOT NULL
)`

const createMetricsTable = `
CREATE TABLE IF NOT EXISTS metrics (
	analysis_id TEXT NOT NULL,
	name        TEXT NOT NULL,
	value       TEXT,
	type        TEXT NOT NULL,
	source      TEXT NOT NULL,
	category    TEXT NOT NULL,
	labels      TEXT,
	timestamp   TEXT NOT NULL,
	unit        TEXT,
	description TEXT,
	FOREIGN KEY (analysis_id) REFERENCES analyses (analysis_id)
)`

// SQLiteSink persists runs into a local SQLite database: one analyses
// row per run plus one metrics row per metric.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (or creates) the database and ensures the schema.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	// Single connection avoids "database is locked" on concurrent runs.
	db.SetMaxOpenConns(1)

	for _, query := range []string{createAnalysesTable, createMetricsTable} {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &SQLiteSink{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteSink) Close() error { return s.db.Close() }

// Store implements Sink. Re-storing the same analysis ID replaces the
// previous rows.
func (s *SQLiteSink) Store(ctx context.Context, metrics *models.MetricSet, scoring *models.ScoringResult) error {
	scoringJSON, err := json.Marshal(scoring)
	if err != nil {
		return fmt.Errorf("encode scoring: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM metrics WHERE analysis_id = ?`, metrics.AnalysisID); err != nil {
		return fmt.Errorf("clear previous metrics: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO analyses (analysis_id, repo_url, branch, collected_at, scoring)
		 VALUES (?, ?, ?, ?, ?)`,
		metrics.AnalysisID, metrics.RepoURL, metrics.Branch,
		metrics.CollectedAt.Format("2006-01-02T15:04:05Z07:00"), string(scoringJSON)); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO metrics (analysis_id, name, value, type, source, category, labels, timestamp, unit, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare metric insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range metrics.Metrics {
		value, err := json.Marshal(m.Value)
		if err != nil {
			return fmt.Errorf("encode metric %s value: %w", m.Name, err)
		}
		var labels []byte
		if len(m.Labels) > 0 {
			if labels, err = json.Marshal(m.Labels); err != nil {
				return fmt.Errorf("encode metric %s labels: %w", m.Name, err)
			}
		}
		if _, err := stmt.ExecContext(ctx,
			metrics.AnalysisID, m.Name, string(value), string(m.Type), string(m.Source),
			string(m.Category), string(labels), m.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			m.Unit, m.Description); err != nil {
			return fmt.Errorf("insert metric %s: %w", m.Name, err)
		}
	}

	return tx.Commit()
}
