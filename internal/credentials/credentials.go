// Package credentials persists the three identifiers needed to start an
// authenticated session. The store is a passive mirror of the screen's state:
// reads and writes are best effort because the values can always be re-entered.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/garrettladley/sensorlink/internal/validator"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

const (
	KeyAppID     = "appId"
	KeyAppSecret = "appSecret"
	KeyUserID    = "userId"
)

var Keys = []string{KeyAppID, KeyAppSecret, KeyUserID}

// MaxLength is the longest identifier accepted, in characters.
const MaxLength = 64

var ErrNotFound = errors.New("credential not found")

type Store interface {
	// Get returns ErrNotFound when the key has never been set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
}

var _ validator.Validator = Credentials{}

type Credentials struct {
	AppID     string
	AppSecret string
	UserID    string
}

func (c Credentials) Validate() map[string]string {
	errs := make(map[string]string)
	for key, value := range c.fields() {
		if utf8.RuneCountInString(value) > MaxLength {
			errs[key] = fmt.Sprintf("must be at most %d characters", MaxLength)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Complete reports whether every identifier is present.
func (c Credentials) Complete() bool {
	return c.AppID != "" && c.AppSecret != "" && c.UserID != ""
}

func (c Credentials) Get(key string) string {
	return c.fields()[key]
}

// With returns a copy with key set to the clamped value. Unknown keys are ignored.
func (c Credentials) With(key string, value string) Credentials {
	c.set(key, Clamp(value))
	return c
}

func (c *Credentials) set(key string, value string) {
	switch key {
	case KeyAppID:
		c.AppID = value
	case KeyAppSecret:
		c.AppSecret = value
	case KeyUserID:
		c.UserID = value
	}
}

func (c Credentials) fields() map[string]string {
	return map[string]string{
		KeyAppID:     c.AppID,
		KeyAppSecret: c.AppSecret,
		KeyUserID:    c.UserID,
	}
}

// Clamp cuts s to MaxLength characters.
func Clamp(s string) string {
	if utf8.RuneCountInString(s) <= MaxLength {
		return s
	}
	return string([]rune(s)[:MaxLength])
}

// Load reads every key. Absent keys and read failures leave the field empty.
func Load(ctx context.Context, store Store, logger *slog.Logger) Credentials {
	var c Credentials
	for _, key := range Keys {
		value, err := store.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			logger.WarnContext(ctx, "failed to read credential", xslog.Key(key), xslog.Error(err))
			continue
		}
		c.set(key, value)
	}
	return c
}

// Put writes every key and reports the first failure.
func Put(ctx context.Context, store Store, c Credentials) error {
	for _, key := range Keys {
		if err := store.Set(ctx, key, c.Get(key)); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return nil
}

// Save is Put with failures logged and dropped.
func Save(ctx context.Context, store Store, logger *slog.Logger, c Credentials) {
	if err := Put(ctx, store, c); err != nil {
		logger.WarnContext(ctx, "failed to save credentials", xslog.Error(err))
	}
}
