package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/vcastgen/internal/model"
)

// FileName is the database file created inside the history directory.
const FileName = "vcastgen.db"

// ErrRunNotFound is returned when a run ID is not in the database.
var ErrRunNotFound = errors.New("run not found")

// HistoryDB stores generation runs.
//
// Design decision: We store the full report as JSON next to a few indexed
// columns. The report structure may grow without schema migrations, and the
// listing queries never need to decode it.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		unit_name TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		succeeded INTEGER NOT NULL,
		success_count INTEGER NOT NULL,
		total INTEGER NOT NULL,
		env_fingerprint TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_unit ON runs(unit_name);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	// ID is the run ID.
	ID string

	// UnitName is the unit the run generated reports for.
	UnitName string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended.
	FinishedAt time.Time

	// Succeeded is the overall result.
	Succeeded bool

	// SuccessCount is the number of operations that counted as success.
	SuccessCount int

	// Total is the number of operations.
	Total int

	// EnvFingerprint identifies the environment file contents used.
	EnvFingerprint string
}

// SaveRun stores report. Saving the same run ID twice replaces the entry.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.GenerationReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO runs (id, unit_name, started_at, finished_at, succeeded, success_count, total, env_fingerprint, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		finished_at = excluded.finished_at,
		succeeded = excluded.succeeded,
		success_count = excluded.success_count,
		total = excluded.total,
		env_fingerprint = excluded.env_fingerprint,
		report_json = excluded.report_json
	`

	_, err = hdb.db.ExecContext(ctx, query,
		report.ID,
		report.UnitName,
		formatTimestamp(report.StartedAt),
		formatTimestamp(report.FinishedAt),
		report.Succeeded(),
		report.SuccessCount(),
		report.TotalOperations(),
		report.EnvFingerprint,
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// ListRuns returns the most recent runs first. An empty unit lists all
// units; a limit of zero or less means no limit.
func (hdb *HistoryDB) ListRuns(ctx context.Context, unit string, limit int) ([]RunSummary, error) {
	query := `
	SELECT id, unit_name, started_at, finished_at, succeeded, success_count, total, env_fingerprint
	FROM runs
	WHERE (? = '' OR unit_name = ?)
	ORDER BY started_at DESC
	`
	args := []any{unit, unit}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run         RunSummary
			started     string
			finished    sql.NullString
			fingerprint sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.UnitName, &started, &finished,
			&run.Succeeded, &run.SuccessCount, &run.Total, &fingerprint); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = parseTimestamp(started)
		if finished.Valid {
			run.FinishedAt = parseTimestamp(finished.String)
		}
		run.EnvFingerprint = fingerprint.String
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRun returns the stored report with the given ID.
func (hdb *HistoryDB) GetRun(ctx context.Context, id string) (*model.GenerationReport, error) {
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, `SELECT report_json FROM runs WHERE id = ?`, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var report model.GenerationReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListUnits returns the names of all units with stored runs.
func (hdb *HistoryDB) ListUnits(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx, `SELECT DISTINCT unit_name FROM runs ORDER BY unit_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	var units []string
	for rows.Next() {
		var unit string
		if err := rows.Scan(&unit); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}

	return units, rows.Err()
}

// timestampLayout sorts lexically in chronological order for UTC values.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTimestamp formats t for storage. Zero times are stored as "".
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

// timestampFormats contains the timestamp formats accepted when reading.
var timestampFormats = []string{
	timestampLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp parses s with the known formats, or returns the zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
