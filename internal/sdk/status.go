package sdk

import (
	"encoding"
	"fmt"
	"strings"
)

// SensorStatus is the aggregate permission state of a sensor list.
// The numeric values match the SDK's wire encoding.
type SensorStatus uint8

const (
	SensorStatusPending SensorStatus = iota
	SensorStatusUnavailable
	SensorStatusDisabled
	SensorStatusEnabled
)

var (
	_ fmt.Stringer             = SensorStatus(0)
	_ encoding.TextMarshaler   = SensorStatus(0)
	_ encoding.TextUnmarshaler = (*SensorStatus)(nil)
)

func (s SensorStatus) String() string {
	switch s {
	case SensorStatusPending:
		return "pending"
	case SensorStatusUnavailable:
		return "unavailable"
	case SensorStatusDisabled:
		return "disabled"
	case SensorStatusEnabled:
		return "enabled"
	default:
		return fmt.Sprintf("SensorStatus(%d)", uint8(s))
	}
}

func (s SensorStatus) Valid() bool {
	return s <= SensorStatusEnabled
}

// CanEnable reports whether enabling sensors is a meaningful request.
// Unavailable and enabled are terminal for that action.
func (s SensorStatus) CanEnable() bool {
	switch s {
	case SensorStatusPending, SensorStatusDisabled:
		return true
	case SensorStatusUnavailable, SensorStatusEnabled:
		return false
	default:
		return false
	}
}

func ParseSensorStatus(s string) (SensorStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return SensorStatusPending, nil
	case "unavailable":
		return SensorStatusUnavailable, nil
	case "disabled":
		return SensorStatusDisabled, nil
	case "enabled":
		return SensorStatusEnabled, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

func (s SensorStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *SensorStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseSensorStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
