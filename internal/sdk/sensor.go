package sdk

import (
	"encoding"
	"fmt"
	"strings"
)

// Sensor is a category of data the SDK can collect. The screen forwards a
// fixed list and never inspects the data itself.
type Sensor string

const (
	SensorSteps      Sensor = "steps"
	SensorSleep      Sensor = "sleep"
	SensorDeviceLock Sensor = "device_lock"
	SensorHeartRate  Sensor = "heart_rate"
	SensorEnergy     Sensor = "energy"
)

var AllSensors = []Sensor{
	SensorSteps,
	SensorSleep,
	SensorDeviceLock,
	SensorHeartRate,
	SensorEnergy,
}

// DefaultSensors is the list the screen asks about.
var DefaultSensors = []Sensor{
	SensorSteps,
	SensorSleep,
	SensorDeviceLock,
}

var _ encoding.TextUnmarshaler = (*Sensor)(nil)

func ParseSensor(s string) (Sensor, error) {
	sensor := Sensor(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllSensors {
		if sensor == known {
			return sensor, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSensor, s)
}

func (s Sensor) String() string { return string(s) }

func (s *Sensor) UnmarshalText(text []byte) error {
	parsed, err := ParseSensor(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func SensorNames(sensors []Sensor) []string {
	names := make([]string, len(sensors))
	for i, s := range sensors {
		names[i] = string(s)
	}
	return names
}
