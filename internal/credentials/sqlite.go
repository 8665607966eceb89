package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garrettladley/sensorlink/internal/db"
)

var _ Store = (*SQLiteStore)(nil)

type SQLiteStore struct {
	q db.Querier
}

func NewSQLiteStore(q db.Querier) *SQLiteStore {
	return &SQLiteStore{q: q}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.q.GetValue(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	if err := s.q.SetValue(ctx, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	if err := s.q.DeleteValues(ctx, keys); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}
