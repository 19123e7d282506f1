// Package history records conversion runs in a SQLite database so earlier
// results can be listed and compared.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/monsterxml/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run is a recorded conversion run
type Run struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	InputRoot  string
	OutputPath string
	Scanned    int
	Included   int
	Skipped    int
}

// Store manages the SQLite run history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (or creates) the history database at dbPath and applies the schema.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path the store was opened with
func (s *Store) Path() string {
	return s.dbPath
}

// RecordRun stores a run summary and its skipped files in one transaction.
func (s *Store) RecordRun(ctx context.Context, summary models.RunSummary) error {
	if summary.RunID == "" {
		return fmt.Errorf("record run: missing run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, started_at, duration_ms, input_root, output_path, scanned, included, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.StartedAt.UTC(),
		summary.Duration.Milliseconds(),
		summary.InputRoot,
		summary.OutputPath,
		summary.Scanned,
		summary.Included,
		len(summary.Skipped),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if len(summary.Skipped) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO skipped_files (run_id, position, path, reason) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare skipped insert: %w", err)
		}
		defer stmt.Close()

		for i, sk := range summary.Skipped {
			if _, err := stmt.ExecContext(ctx, summary.RunID, i, sk.Path, sk.Reason); err != nil {
				return fmt.Errorf("insert skipped file %s: %w", sk.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, duration_ms, input_root, output_path, scanned, included, skipped
		FROM runs
		ORDER BY started_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		if err := rows.Scan(&r.ID, &r.StartedAt, &durationMs, &r.InputRoot, &r.OutputPath, &r.Scanned, &r.Included, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a single run by ID or a unique ID prefix.
// Returns sql.ErrNoRows when nothing matches.
func (s *Store) GetRun(ctx context.Context, idOrPrefix string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, started_at, duration_ms, input_root, output_path, scanned, included, skipped
		FROM runs WHERE id LIKE ? ESCAPE '\' LIMIT 2`, escapeLike(idOrPrefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		if err := rows.Scan(&r.ID, &r.StartedAt, &durationMs, &r.InputRoot, &r.OutputPath, &r.Scanned, &r.Included, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, sql.ErrNoRows
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", idOrPrefix)
	}
}

// GetSkippedFiles returns the skipped files of a run in their original order
func (s *Store) GetSkippedFiles(ctx context.Context, runID string) ([]models.SkippedFile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, reason FROM skipped_files WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query skipped files: %w", err)
	}
	defer rows.Close()

	skipped := make([]models.SkippedFile, 0)
	for rows.Next() {
		var sk models.SkippedFile
		if err := rows.Scan(&sk.Path, &sk.Reason); err != nil {
			return nil, fmt.Errorf("scan skipped file: %w", err)
		}
		skipped = append(skipped, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skipped files: %w", err)
	}
	return skipped, nil
}

// escapeLike escapes LIKE wildcards in s
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
