package sandbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/garrettladley/sensorlink/internal/migrations/postgres"
)

var _ ProfileStore = (*PostgresStore)(nil)

type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects and applies the sandbox schema.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if _, err := postgres.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

const profileColumns = "id, app_id, external_id, refresh_token, device_information, created_at"

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.AppID, &p.ExternalID, &p.RefreshToken, &p.DeviceInformation, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) Register(ctx context.Context, appID, externalID, refreshToken string) (Profile, error) {
	// the no-op update makes RETURNING yield the existing row on conflict
	row := s.pool.QueryRow(ctx, `
		INSERT INTO profiles (id, app_id, external_id, refresh_token)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (app_id, external_id) DO UPDATE SET updated_at = NOW()
		RETURNING `+profileColumns,
		uuid.New(), appID, externalID, refreshToken,
	)
	return scanProfile(row)
}

func (s *PostgresStore) ByRefreshToken(ctx context.Context, refreshToken string) (Profile, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE refresh_token = $1",
		refreshToken,
	)
	return scanProfile(row)
}

func (s *PostgresStore) ByAccessToken(ctx context.Context, accessToken string, now time.Time) (Profile, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT p.id, p.app_id, p.external_id, p.refresh_token, p.device_information, p.created_at
		FROM profile_tokens t
		JOIN profiles p ON p.id = t.profile_id
		WHERE t.access_token = $1 AND t.expires_at > $2`,
		accessToken, now,
	)
	return scanProfile(row)
}

func (s *PostgresStore) IssueToken(ctx context.Context, profileID uuid.UUID, accessToken string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO profile_tokens (access_token, profile_id, expires_at) VALUES ($1, $2, $3)",
		accessToken, profileID, expiresAt,
	)
	return err
}

func (s *PostgresStore) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM profile_tokens WHERE expires_at <= $1", now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) SetDeviceInformation(ctx context.Context, profileID uuid.UUID, info []byte) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE profiles SET device_information = $2, updated_at = NOW() WHERE id = $1",
		profileID, info,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
