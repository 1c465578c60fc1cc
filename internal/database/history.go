package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/nymix/internal/model"
)

// DatabaseFile is the file name of the history database.
const DatabaseFile = "nymix.db"

// ErrRunNotFound is returned when no run matches the requested ID.
var ErrRunNotFound = errors.New("run not found")

// HistoryDB provides SQLite-based storage for check runs.
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

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DatabaseFile)

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
	-- Runs store complete result sets as JSON
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		names TEXT NOT NULL,
		targets TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		available INTEGER NOT NULL,
		taken INTEGER NOT NULL,
		unknown INTEGER NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

	-- Records allow looking up a name across runs
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		target TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT,
		checked_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_name ON records(name);
	CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveResultSet stores a run and its records in one transaction.
func (hdb *HistoryDB) SaveResultSet(ctx context.Context, rs *model.ResultSet) error {
	resultJSON, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("failed to serialize result set: %w", err)
	}
	namesJSON, err := json.Marshal(namesOf(rs))
	if err != nil {
		return fmt.Errorf("failed to serialize names: %w", err)
	}
	targetsJSON, err := json.Marshal(labelsOf(rs))
	if err != nil {
		return fmt.Errorf("failed to serialize targets: %w", err)
	}
	summary := rs.Summary()

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // No-op after commit
	}()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, created_at, names, targets, record_count, available, taken, unknown, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rs.ID,
		rs.CreatedAt.UTC().Format(storedTimeLayout),
		string(namesJSON),
		string(targetsJSON),
		len(rs.Records),
		summary.Available,
		summary.Taken,
		summary.Unknown,
		string(resultJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO records (run_id, position, name, kind, target, status, detail, checked_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rs.Records {
		_, err := stmt.ExecContext(ctx,
			rs.ID,
			i,
			r.Name,
			string(r.Kind),
			r.Target,
			string(r.Status),
			r.Detail,
			r.CheckedAt.UTC().Format(storedTimeLayout),
		)
		if err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// RunMetadata contains summary information about a stored run.
// This is used for listing runs without loading the full result set.
type RunMetadata struct {
	// ID is the run's result set ID.
	ID string

	// CreatedAt is when the run started.
	CreatedAt time.Time

	// Names are the checked names.
	Names []string

	// Targets are the checked target labels (".com", "@instagram").
	Targets []string

	// Records is the number of stored records.
	Records int

	// Summary counts the records by status.
	Summary model.Summary
}

// ListRuns returns run metadata, newest first. A limit of zero or less
// returns every run.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, created_at, names, targets, record_count, available, taken, unknown
	FROM runs
	ORDER BY created_at DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	results := make([]RunMetadata, 0)
	for rows.Next() {
		var meta RunMetadata
		var createdAt, namesJSON, targetsJSON string

		if err := rows.Scan(
			&meta.ID,
			&createdAt,
			&namesJSON,
			&targetsJSON,
			&meta.Records,
			&meta.Summary.Available,
			&meta.Summary.Taken,
			&meta.Summary.Unknown,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		meta.CreatedAt = parseTimestamp(createdAt)
		if err := json.Unmarshal([]byte(namesJSON), &meta.Names); err != nil {
			meta.Names = nil
		}
		if err := json.Unmarshal([]byte(targetsJSON), &meta.Targets); err != nil {
			meta.Targets = nil
		}
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetResultSet retrieves a stored run. id may be a unique prefix of the run ID.
func (hdb *HistoryDB) GetResultSet(ctx context.Context, id string) (*model.ResultSet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT result_json FROM runs
	WHERE id = ? OR id LIKE ? ESCAPE '\'
	LIMIT 2
	`, id, escapeLike(id)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	found := make([]string, 0, 2)
	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		found = append(found, resultJSON)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
	default:
		return nil, fmt.Errorf("%w: prefix %q matches several runs", ErrRunNotFound, id)
	}

	var rs model.ResultSet
	if err := json.Unmarshal([]byte(found[0]), &rs); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}
	return &rs, nil
}

// NameHistory returns every stored record of name, newest first.
func (hdb *HistoryDB) NameHistory(ctx context.Context, name string) ([]model.Record, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT name, kind, target, status, detail, checked_at
	FROM records
	WHERE name = ?
	ORDER BY checked_at DESC, position ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query name history: %w", err)
	}
	defer rows.Close()

	records := make([]model.Record, 0)
	for rows.Next() {
		var r model.Record
		var kind, status, checkedAt string
		var detail sql.NullString

		if err := rows.Scan(&r.Name, &kind, &r.Target, &status, &detail, &checkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Kind = model.TargetKind(kind)
		r.Status = model.Status(status)
		r.Detail = detail.String
		r.CheckedAt = parseTimestamp(checkedAt)
		records = append(records, r)
	}

	return records, rows.Err()
}

// DeleteRun removes a run and its records.
func (hdb *HistoryDB) DeleteRun(ctx context.Context, id string) error {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // No-op after commit
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return tx.Commit()
}

// namesOf returns the distinct names of a result set in order.
func namesOf(rs *model.ResultSet) []string {
	groups := rs.Groups()
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

// labelsOf returns the target labels of a result set in order.
func labelsOf(rs *model.ResultSet) []string {
	targets := rs.Targets()
	labels := make([]string, len(targets))
	for i, t := range targets {
		labels[i] = t.Label()
	}
	return labels
}

// escapeLike escapes LIKE wildcards.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// storedTimeLayout is the UTC layout written to created_at and checked_at.
// Its fractional part has a fixed width so that text ordering matches
// time ordering.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	storedTimeLayout,          // Format written by this package
	time.RFC3339Nano,          // Older rows with trimmed fractions
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
