package db

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Querier interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key string, value string) error
	DeleteValues(ctx context.Context, keys []string) error

	GetToken(ctx context.Context) (Token, error)
	UpsertToken(ctx context.Context, arg UpsertTokenParams) error
	DeleteToken(ctx context.Context) error

	ListSensorPermissions(ctx context.Context) ([]SensorPermission, error)
	UpsertSensorPermission(ctx context.Context, sensor string, permission string) error
	DeleteSensorPermissions(ctx context.Context) error
}

var _ Querier = (*Queries)(nil)

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Token struct {
	AccessToken  string
	RefreshToken *string
	TokenType    string
	Expiry       time.Time
}

type UpsertTokenParams struct {
	AccessToken  string
	RefreshToken *string
	TokenType    string
	Expiry       time.Time
}

type SensorPermission struct {
	Sensor     string
	Permission string
	UpdatedAt  time.Time
}

func (q *Queries) GetValue(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM kv WHERE key = ?`
	var value string
	err := q.db.QueryRowContext(ctx, query, key).Scan(&value)
	return value, err
}

func (q *Queries) SetValue(ctx context.Context, key string, value string) error {
	const query = `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := q.db.ExecContext(ctx, query, key, value)
	return err
}

func (q *Queries) DeleteValues(ctx context.Context, keys []string) error {
	const query = `DELETE FROM kv WHERE key = ?`
	for _, key := range keys {
		if _, err := q.db.ExecContext(ctx, query, key); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queries) GetToken(ctx context.Context) (Token, error) {
	const query = `SELECT access_token, refresh_token, token_type, expiry FROM profile_token WHERE id = 1`
	var t Token
	err := q.db.QueryRowContext(ctx, query).Scan(&t.AccessToken, &t.RefreshToken, &t.TokenType, &t.Expiry)
	return t, err
}

func (q *Queries) UpsertToken(ctx context.Context, arg UpsertTokenParams) error {
	const query = `
		INSERT INTO profile_token (id, access_token, refresh_token, token_type, expiry, updated_at)
		VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at`
	_, err := q.db.ExecContext(ctx, query, arg.AccessToken, arg.RefreshToken, arg.TokenType, arg.Expiry.UTC())
	return err
}

func (q *Queries) DeleteToken(ctx context.Context) error {
	const query = `DELETE FROM profile_token`
	_, err := q.db.ExecContext(ctx, query)
	return err
}

func (q *Queries) ListSensorPermissions(ctx context.Context) ([]SensorPermission, error) {
	const query = `SELECT sensor, permission, updated_at FROM sensor_permissions ORDER BY sensor`
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var perms []SensorPermission
	for rows.Next() {
		var p SensorPermission
		if err := rows.Scan(&p.Sensor, &p.Permission, &p.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (q *Queries) UpsertSensorPermission(ctx context.Context, sensor string, permission string) error {
	const query = `
		INSERT INTO sensor_permissions (sensor, permission, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (sensor) DO UPDATE SET permission = excluded.permission, updated_at = excluded.updated_at`
	_, err := q.db.ExecContext(ctx, query, sensor, permission)
	return err
}

func (q *Queries) DeleteSensorPermissions(ctx context.Context) error {
	const query = `DELETE FROM sensor_permissions`
	_, err := q.db.ExecContext(ctx, query)
	return err
}
