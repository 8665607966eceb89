package credentials

import (
	"context"
	"encoding"
	"fmt"
	"strings"

	"github.com/garrettladley/sensorlink/internal/db"
	xredis "github.com/garrettladley/sensorlink/internal/redis"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

var _ encoding.TextUnmarshaler = (*Backend)(nil)

func (b *Backend) UnmarshalText(text []byte) error {
	switch v := Backend(strings.ToLower(string(text))); v {
	case BackendSQLite, BackendRedis, BackendMemory:
		*b = v
		return nil
	default:
		return fmt.Errorf("invalid credential store %q (valid: sqlite, redis, memory)", text)
	}
}

type Config struct {
	Backend   Backend `env:"BACKEND" envDefault:"sqlite"`
	RedisURL  string  `env:"REDIS_URL"`
	Namespace string  `env:"NAMESPACE"`
}

// Open returns the configured store. q backs the sqlite store and may be nil
// for the other backends. The returned close func releases backend resources.
func Open(ctx context.Context, cfg Config, q db.Querier) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case BackendSQLite, "":
		if q == nil {
			return nil, nil, fmt.Errorf("sqlite credential store requires a database")
		}
		return NewSQLiteStore(q), noop, nil
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, nil, fmt.Errorf("redis credential store requires REDIS_URL")
		}
		client, err := xredis.New(ctx, xredis.Config{URL: cfg.RedisURL})
		if err != nil {
			return nil, nil, err
		}
		store := NewRedisStore(client, cfg.Namespace)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown credential store %q", cfg.Backend)
	}
}
