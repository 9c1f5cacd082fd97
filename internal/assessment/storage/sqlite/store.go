// Package sqlite provides the durable local response store. Rows are stored
// in their encoded 29-cell form so the table layout matches the remote
// spreadsheet contract column for column.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/utechsu/councilpulse/internal/assessment"
	"github.com/utechsu/councilpulse/internal/assessment/storage"
	"github.com/utechsu/councilpulse/internal/assessment/storage/sqlite/migrations"
	"github.com/utechsu/councilpulse/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed response store implementing storage.Local.
type Store struct {
	sqlDB *sql.DB
}

var (
	insertSQL = fmt.Sprintf(
		"INSERT INTO responses (%s) VALUES (%s)",
		strings.Join(assessment.FieldNames, ", "),
		placeholders(assessment.NumFields),
	)
	selectSQL = fmt.Sprintf(
		"SELECT %s FROM responses ORDER BY id",
		strings.Join(assessment.FieldNames, ", "),
	)
)

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Open opens a SQLite response store at the provided path, creating the
// parent directory and applying migrations as needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Append adds a response at the end of the collection.
func (s *Store) Append(ctx context.Context, r assessment.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ErrNotConfigured
	}

	if _, err := s.sqlDB.ExecContext(ctx, insertSQL, rowArgs(r)...); err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

// All returns the collection in insertion order.
func (s *Store) All(ctx context.Context) ([]assessment.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, storage.ErrNotConfigured
	}

	rows, err := s.sqlDB.QueryContext(ctx, selectSQL)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []assessment.Response
	for rows.Next() {
		cells := make([]string, assessment.NumFields)
		dest := make([]any, assessment.NumFields)
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, assessment.DecodeRow(cells))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}

// Replace swaps the whole collection in a single transaction.
func (s *Store) Replace(ctx context.Context, rs []assessment.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ErrNotConfigured
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM responses"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear responses: %w", err)
	}
	for _, r := range rs {
		if _, err := tx.ExecContext(ctx, insertSQL, rowArgs(r)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert replacement response: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace transaction: %w", err)
	}
	return nil
}

// Clear empties the collection.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ErrNotConfigured
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM responses"); err != nil {
		return fmt.Errorf("clear responses: %w", err)
	}
	return nil
}

// Count returns the number of stored responses.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, storage.ErrNotConfigured
	}

	var count int
	row := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM responses")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return count, nil
}

func rowArgs(r assessment.Response) []any {
	cells := assessment.EncodeRow(r)
	args := make([]any, len(cells))
	for i, cell := range cells {
		args[i] = cell
	}
	return args
}
