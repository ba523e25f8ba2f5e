package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"mercator-hq/callisto/pkg/config"
)

// SQLiteStore implements Store on a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger

	insertStmt *sql.Stmt
}

// NewSQLiteStore opens (or creates) the audit database at the configured
// path, enables WAL mode, and prepares the schema.
func NewSQLiteStore(cfg *config.SQLiteConfig) (*SQLiteStore, error) {
	if cfg == nil {
		cfg = &config.SQLiteConfig{
			Path:          config.DefaultAuditSQLitePath,
			BusyTimeoutMS: config.DefaultAuditBusyTimeoutMS,
		}
	}

	logger := slog.Default().With("component", "audit.store.sqlite")

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "open", Err: err}
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.initialize(cfg); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("sqlite audit store initialized", "path", cfg.Path)
	return s, nil
}

// initialize enables WAL mode, sets the busy timeout, and creates the schema.
func (s *SQLiteStore) initialize(cfg *config.SQLiteConfig) error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return &StorageError{Backend: "sqlite", Op: "enable_wal", Err: err}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", cfg.BusyTimeoutMS)); err != nil {
		return &StorageError{Backend: "sqlite", Op: "set_busy_timeout", Err: err}
	}

	if _, err := s.db.Exec(schema); err != nil {
		return &StorageError{Backend: "sqlite", Op: "create_schema", Err: err}
	}
	if _, err := s.db.Exec(insertSchemaVersion, schemaVersion); err != nil {
		return &StorageError{Backend: "sqlite", Op: "insert_schema_version", Err: err}
	}

	var version int
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil {
		return &StorageError{Backend: "sqlite", Op: "get_schema_version", Err: err}
	}
	if version != schemaVersion {
		return &StorageError{Backend: "sqlite", Op: "schema_version_mismatch",
			Err: fmt.Errorf("expected schema version %d, got %d", schemaVersion, version)}
	}

	insert, err := s.db.Prepare(`
		INSERT INTO audit (id, time, method, owner, arg_count, duration_ns, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "prepare_insert", Err: err}
	}
	s.insertStmt = insert

	return nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, record *Record) error {
	var errVal any
	if record.Error != "" {
		errVal = record.Error
	}

	_, err := s.insertStmt.ExecContext(ctx,
		record.ID, record.Time, record.Method, record.Owner,
		record.ArgCount, record.Duration.Nanoseconds(), record.Outcome, errVal,
	)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "save", Err: err}
	}
	return nil
}

// Query implements Store.
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Record, error) {
	where, args := buildWhereClause(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	query := "SELECT id, time, method, owner, arg_count, duration_ns, outcome, error FROM audit"
	if where != "" {
		query += " WHERE " + where
	}
	query += fmt.Sprintf(" ORDER BY time DESC LIMIT %d", limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "query", Err: err}
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, &StorageError{Backend: "sqlite", Op: "scan", Err: err}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "query", Err: err}
	}
	return records, nil
}

// Count implements Store.
func (s *SQLiteStore) Count(ctx context.Context, filter Filter) (int64, error) {
	where, args := buildWhereClause(filter)

	query := "SELECT COUNT(*) FROM audit"
	if where != "" {
		query += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "count", Err: err}
	}
	return count, nil
}

// DeleteBefore implements Store.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM audit WHERE time < ?", cutoff)
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "delete", Err: err}
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "delete", Err: err}
	}
	return count, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	if s.insertStmt != nil {
		s.insertStmt.Close()
	}
	if err := s.db.Close(); err != nil {
		return &StorageError{Backend: "sqlite", Op: "close", Err: err}
	}
	s.logger.Info("sqlite audit store closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from the filter. Returns the
// clause without the WHERE keyword plus the bound arguments.
func buildWhereClause(filter Filter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Method != "" {
		conditions = append(conditions, "method = ?")
		args = append(args, filter.Method)
	}
	if filter.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, filter.Outcome)
	}
	if !filter.Since.IsZero() {
		conditions = append(conditions, "time >= ?")
		args = append(args, filter.Since)
	}
	if !filter.Until.IsZero() {
		conditions = append(conditions, "time <= ?")
		args = append(args, filter.Until)
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow scans one database row into a Record.
func scanRow(rows *sql.Rows) (*Record, error) {
	var record Record
	var durationNS int64
	var errVal sql.NullString

	err := rows.Scan(
		&record.ID, &record.Time, &record.Method, &record.Owner,
		&record.ArgCount, &durationNS, &record.Outcome, &errVal,
	)
	if err != nil {
		return nil, err
	}

	record.Duration = time.Duration(durationNS)
	if errVal.Valid {
		record.Error = errVal.String
	}
	return &record, nil
}
