package sdk

import (
	"encoding"
	"fmt"
	"strings"
)

type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

var _ encoding.TextUnmarshaler = (*Environment)(nil)

func ParseEnvironment(s string) (Environment, error) {
	switch e := Environment(strings.ToLower(strings.TrimSpace(s))); e {
	case EnvironmentSandbox, EnvironmentProduction:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: sandbox, production)", ErrInvalidEnvironment, s)
	}
}

func (e Environment) Valid() bool {
	return e == EnvironmentSandbox || e == EnvironmentProduction
}

func (e Environment) String() string { return string(e) }

func (e *Environment) UnmarshalText(text []byte) error {
	parsed, err := ParseEnvironment(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
