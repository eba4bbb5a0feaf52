package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStorage implements Storage using SQLite.
//
// The database is opened in WAL mode with a single writer connection, which
// matches the pipeline's fully serialized write pattern.
type SQLiteStorage struct {
	db     *sql.DB
	logger *slog.Logger

	storeStmt  *sql.Stmt
	recentStmt *sql.Stmt
	countStmt  *sql.Stmt
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id TEXT PRIMARY KEY,
	request_id TEXT NOT NULL,
	method TEXT NOT NULL,
	path TEXT NOT NULL,
	outcome TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	upstream_latency_ms INTEGER NOT NULL,
	turns INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exchanges_created_at ON exchanges(created_at);
`

// NewSQLiteStorage opens (and if needed creates) the journal database.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("journal db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStorage{
		db:     db,
		logger: slog.Default().With("component", "journal.sqlite"),
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare journal statements: %w", err)
	}

	s.logger.Info("journal storage initialized", "path", path)
	return s, nil
}

// prepareStatements prepares the hot-path SQL statements for reuse.
func (s *SQLiteStorage) prepareStatements() error {
	var err error

	s.storeStmt, err = s.db.Prepare(`
		INSERT INTO exchanges (id, request_id, method, path, outcome, status_code, error, upstream_latency_ms, turns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}

	s.recentStmt, err = s.db.Prepare(`
		SELECT id, request_id, method, path, outcome, status_code, error, upstream_latency_ms, turns, created_at
		FROM exchanges ORDER BY created_at DESC, id DESC LIMIT ?`)
	if err != nil {
		return err
	}

	s.countStmt, err = s.db.Prepare(`SELECT COUNT(*) FROM exchanges`)
	return err
}

// Store persists a record.
func (s *SQLiteStorage) Store(ctx context.Context, record *Record) error {
	_, err := s.storeStmt.ExecContext(ctx,
		record.ID,
		record.RequestID,
		record.Method,
		record.Path,
		record.Outcome,
		record.StatusCode,
		record.Error,
		record.UpstreamLatency.Milliseconds(),
		record.Turns,
		record.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to store journal record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *SQLiteStorage) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.recentStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		var latencyMs, createdAt int64
		if err := rows.Scan(
			&rec.ID, &rec.RequestID, &rec.Method, &rec.Path, &rec.Outcome,
			&rec.StatusCode, &rec.Error, &latencyMs, &rec.Turns, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal record: %w", err)
		}
		rec.UpstreamLatency = time.Duration(latencyMs) * time.Millisecond
		rec.CreatedAt = time.UnixMilli(createdAt)
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Count returns the total number of records.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.countStmt.QueryRowContext(ctx).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journal records: %w", err)
	}
	return n, nil
}

// DeleteBefore removes records created before the cutoff.
func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM exchanges WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal by age: %w", err)
	}
	return res.RowsAffected()
}

// DeleteOverCount removes the oldest records beyond max.
func (s *SQLiteStorage) DeleteOverCount(ctx context.Context, max int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM exchanges WHERE id IN (
			SELECT id FROM exchanges ORDER BY created_at DESC, id DESC LIMIT -1 OFFSET ?
		)`, max)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal by count: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
