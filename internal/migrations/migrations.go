// Package migrations applies embedded, forward-only SQL files in name order.
// Each applied file is recorded in a migrations_history table.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Executor is one database's view of the history table.
type Executor interface {
	EnsureHistory(ctx context.Context) error
	IsApplied(ctx context.Context, name string) (bool, error)
	// Run executes the statements of one migration and records name, atomically.
	Run(ctx context.Context, name string, statements []string) error
}

// Run applies every pending file in dir and returns the names it applied.
func Run(ctx context.Context, fsys fs.FS, dir string, e Executor) ([]string, error) {
	if err := e.EnsureHistory(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migrations history table: %w", err)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var applied []string
	for _, name := range names {
		done, err := e.IsApplied(ctx, name)
		if err != nil {
			return applied, fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		if err := e.Run(ctx, name, Statements(string(content))); err != nil {
			return applied, fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
		applied = append(applied, name)
	}

	return applied, nil
}

// Statements splits a file on semicolons, dropping blanks.
func Statements(content string) []string {
	var out []string
	for stmt := range strings.SplitSeq(content, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
