package datastore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Run statuses stored in the ledger.
const (
	RunStatusStarted   = "STARTED"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
	RunStatusCancelled = "CANCELLED"
)

// RunLedger records one row per pipeline run in a SQLite database.
type RunLedger struct {
	db     *sql.DB
	logger zerolog.Logger
}

// RunLedgerEntry represents a record in the run_history table.
type RunLedgerEntry struct {
	ID              int64
	RunID           string
	StartedAt       time.Time
	FinishedAt      sql.NullTime
	Status          string
	TitlesChecked   int
	TitlesBaselined int
	TitlesUnchanged int
	TitlesUpdated   int
	FetchFailures   int
	NotifyFailures  int
	HistorySaved    bool
	ErrorMessage    sql.NullString
}

// NewRunLedger opens (or creates) the ledger database and ensures the schema.
func NewRunLedger(dataSourceName string, logger zerolog.Logger) (*RunLedger, error) {
	logger = logger.With().Str("component", "RunLedger").Logger()
	logger.Debug().Str("db_path", dataSourceName).Msg("Opening run ledger")

	if dataSourceName != ":memory:" {
		dbDir := filepath.Dir(dataSourceName)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create run ledger directory")
			return nil, fmt.Errorf("failed to create run ledger directory %s: %w", dbDir, err)
		}
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open run ledger")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// A single connection keeps :memory: databases shared and serialises writers.
	dbInstance.SetMaxOpenConns(1)

	ledger := &RunLedger{
		db:     dbInstance,
		logger: logger,
	}

	if err := ledger.initSchema(); err != nil {
		_ = ledger.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return ledger, nil
}

// Close closes the database connection.
func (l *RunLedger) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

func (l *RunLedger) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		status TEXT NOT NULL,
		titles_checked INTEGER DEFAULT 0,
		titles_baselined INTEGER DEFAULT 0,
		titles_unchanged INTEGER DEFAULT 0,
		titles_updated INTEGER DEFAULT 0,
		fetch_failures INTEGER DEFAULT 0,
		notify_failures INTEGER DEFAULT 0,
		history_saved INTEGER DEFAULT 0,
		error_message TEXT
	);
	`
	if _, err := l.db.Exec(query); err != nil {
		l.logger.Error().Err(err).Msg("Failed to initialize run ledger schema")
		return err
	}
	return nil
}

// RecordRunStart inserts a STARTED row and returns its id.
func (l *RunLedger) RecordRunStart(runID string, startedAt time.Time) (int64, error) {
	if l.db == nil {
		return 0, ErrLedgerClosed
	}

	query := `INSERT INTO run_history (run_id, started_at, status) VALUES (?, ?, ?)`
	result, err := l.db.Exec(query, runID, startedAt.UTC(), RunStatusStarted)
	if err != nil {
		l.logger.Error().Err(err).Str("run_id", runID).Msg("Failed to record run start")
		return 0, fmt.Errorf("failed to insert run start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	l.logger.Debug().Int64("db_id", id).Str("run_id", runID).Msg("Recorded run start")
	return id, nil
}

// RecordRunCompletion updates the row created by RecordRunStart with the run outcome.
func (l *RunLedger) RecordRunCompletion(id int64, entry RunLedgerEntry) error {
	if l.db == nil {
		return ErrLedgerClosed
	}

	query := `UPDATE run_history SET finished_at = ?, status = ?, titles_checked = ?, titles_baselined = ?,
		titles_unchanged = ?, titles_updated = ?, fetch_failures = ?, notify_failures = ?, history_saved = ?,
		error_message = ? WHERE id = ?`

	finished := entry.FinishedAt
	if finished.Valid {
		finished.Time = finished.Time.UTC()
	}

	_, err := l.db.Exec(query, finished, entry.Status, entry.TitlesChecked, entry.TitlesBaselined,
		entry.TitlesUnchanged, entry.TitlesUpdated, entry.FetchFailures, entry.NotifyFailures,
		entry.HistorySaved, entry.ErrorMessage, id)
	if err != nil {
		l.logger.Error().Err(err).Int64("db_id", id).Msg("Failed to record run completion")
		return fmt.Errorf("failed to update run completion for ID %d: %w", id, err)
	}
	l.logger.Debug().Int64("db_id", id).Str("status", entry.Status).Msg("Recorded run completion")
	return nil
}

// RecentRuns returns up to limit rows, newest first.
func (l *RunLedger) RecentRuns(limit int) ([]RunLedgerEntry, error) {
	if l.db == nil {
		return nil, ErrLedgerClosed
	}
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, run_id, started_at, finished_at, status, titles_checked, titles_baselined,
		titles_unchanged, titles_updated, fetch_failures, notify_failures, history_saved, error_message
		FROM run_history ORDER BY id DESC LIMIT ?`
	rows, err := l.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	var entries []RunLedgerEntry
	for rows.Next() {
		var e RunLedgerEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.StartedAt, &e.FinishedAt, &e.Status, &e.TitlesChecked,
			&e.TitlesBaselined, &e.TitlesUnchanged, &e.TitlesUpdated, &e.FetchFailures, &e.NotifyFailures,
			&e.HistorySaved, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run rows: %w", err)
	}
	return entries, nil
}
