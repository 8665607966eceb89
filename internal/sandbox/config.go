package sandbox

import (
	"encoding"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/sensorlink/internal/env"
)

type Config struct {
	Port string             `env:"PORT" envDefault:"8081"`
	Env  appenv.Environment `env:"ENV" envDefault:"development"`
	// DatabaseURL selects the postgres profile store. Empty keeps profiles in memory.
	DatabaseURL string          `env:"DATABASE_URL"`
	Apps        Apps            `env:"APPS" envDefault:"sandbox-app:sandbox-secret"`
	TokenTTL    time.Duration   `env:"TOKEN_TTL" envDefault:"1h"`
	RateLimit   RateLimitConfig `envPrefix:"RATE_"`
	// TokenSweepInterval is how often expired access tokens are deleted.
	TokenSweepInterval time.Duration `env:"TOKEN_SWEEP_INTERVAL" envDefault:"5m"`
}

type RateLimitConfig struct {
	Limit float64 `env:"LIMIT" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"20"`
}

func ReadConfig() (Config, error) {
	return env.ParseAs[Config]()
}

// Apps maps app ids to their secrets.
type Apps map[string]string

var _ encoding.TextUnmarshaler = (*Apps)(nil)

// UnmarshalText parses "appId:secret,appId:secret".
func (a *Apps) UnmarshalText(text []byte) error {
	apps := make(Apps)
	for pair := range strings.SplitSeq(string(text), ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, secret, ok := strings.Cut(pair, ":")
		if !ok || id == "" || secret == "" {
			return fmt.Errorf("invalid app %q (want appId:secret)", pair)
		}
		apps[id] = secret
	}
	if len(apps) == 0 {
		return fmt.Errorf("no apps configured")
	}
	*a = apps
	return nil
}
