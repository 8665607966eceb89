package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"
)

const migrationsDir = "sql"

//go:embed sql/*.sql
var migrationsFS embed.FS

// Apply brings the local database up to date.
func Apply(ctx context.Context, db *sql.DB) ([]string, error) {
	return Run(ctx, migrationsFS, migrationsDir, sqliteExecutor{db: db})
}

type Record struct {
	Name      string
	AppliedAt time.Time
}

// History lists applied migrations, oldest first.
func History(ctx context.Context, db *sql.DB) ([]Record, error) {
	rows, err := db.QueryContext(ctx, "SELECT name, applied_at FROM migrations_history ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Name, &r.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migrations history: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

type sqliteExecutor struct {
	db *sql.DB
}

func (e sqliteExecutor) EnsureHistory(ctx context.Context) error {
	_, err := e.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (e sqliteExecutor) IsApplied(ctx context.Context, name string) (bool, error) {
	var count int
	err := e.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations_history WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (e sqliteExecutor) Run(ctx context.Context, name string, statements []string) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations_history (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
