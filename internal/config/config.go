package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/sdk"
)

const Prefix = "SENSORLINK_"

type Config struct {
	Environment sdk.Environment `env:"ENVIRONMENT" envDefault:"sandbox"`
	// APIURL overrides the environment's API, e.g. to reach a local sandbox.
	APIURL           string        `env:"API_URL"`
	CallTimeout      time.Duration `env:"CALL_TIMEOUT" envDefault:"15s"`
	Sensors          []sdk.Sensor  `env:"SENSORS" envSeparator:"," envDefault:"steps,sleep,device_lock"`
	SupportedSensors []sdk.Sensor  `env:"SUPPORTED_SENSORS" envSeparator:"," envDefault:"steps,sleep,device_lock,heart_rate,energy"`
	// SettingsURL is what open settings launches in the platform opener.
	SettingsURL string             `env:"SETTINGS_URL" envDefault:"https://app.sahha.ai"`
	Credentials credentials.Config `envPrefix:"CREDENTIAL_STORE_"`
}

func Read() (Config, error) {
	return env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
}
