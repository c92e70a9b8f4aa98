package batch

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS conversions (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	input_path TEXT NOT NULL,
	output_path TEXT,
	status TEXT NOT NULL,
	error TEXT,
	repaired INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL,
	converted_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_conversions_input
ON conversions(input_path);`

// Record is one ledger row: the outcome of a single file conversion.
type Record struct {
	ID          string
	InputPath   string
	OutputPath  string
	Status      string // "ok" or "failed"
	Error       string
	Repaired    bool
	Duration    time.Duration
	ConvertedAt time.Time
}

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Ledger persists conversion records in SQLite so scheduled batch runs
// can report what changed between passes.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (or creates) a SQLite-backed conversion ledger.
func OpenLedger(dsn string) (*Ledger, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("ledger sqlite dsn is required")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("ledger open: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger set WAL mode: %w", err)
	}
	if _, err := db.Exec(ledgerSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger create schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Append inserts one conversion record.
func (l *Ledger) Append(rec Record) error {
	repaired := 0
	if rec.Repaired {
		repaired = 1
	}
	_, err := l.db.Exec(
		`INSERT INTO conversions (id, input_path, output_path, status, error, repaired, duration_ms, converted_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.InputPath,
		rec.OutputPath,
		rec.Status,
		rec.Error,
		repaired,
		rec.Duration.Milliseconds(),
		rec.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("ledger append %s: %w", rec.InputPath, err)
	}
	return nil
}

// History returns the records for one input path, newest first.
func (l *Ledger) History(inputPath string) ([]Record, error) {
	rows, err := l.db.Query(
		`SELECT id, input_path, output_path, status, error, repaired, duration_ms, converted_at
FROM conversions WHERE input_path = ? ORDER BY seq DESC`,
		inputPath,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger history %s: %w", inputPath, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Recent returns the most recent records across all inputs, newest
// first, capped at limit.
func (l *Ledger) Recent(limit int) ([]Record, error) {
	rows, err := l.db.Query(
		`SELECT id, input_path, output_path, status, error, repaired, duration_ms, converted_at
FROM conversions ORDER BY seq DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger recent: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var rec Record
		var outputPath, errMsg sql.NullString
		var repaired, durationMS int64
		var convertedAt string
		if err := rows.Scan(&rec.ID, &rec.InputPath, &outputPath, &rec.Status, &errMsg, &repaired, &durationMS, &convertedAt); err != nil {
			return nil, fmt.Errorf("ledger scan: %w", err)
		}
		rec.OutputPath = outputPath.String
		rec.Error = errMsg.String
		rec.Repaired = repaired != 0
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		ts, err := time.Parse(time.RFC3339Nano, convertedAt)
		if err != nil {
			return nil, fmt.Errorf("ledger parse timestamp %q: %w", convertedAt, err)
		}
		rec.ConvertedAt = ts
		out = append(out, rec)
	}
	return out, rows.Err()
}
