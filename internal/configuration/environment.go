package configuration

import (
	"fmt"
	"os"
	"strings"
)

// EnvironmentVariable selects which profile file is layered over application.yml.
const EnvironmentVariable = "APP_ENVIRONMENT"

type Environment string

const (
	Local      Environment = "local"
	Production Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

// ParseEnvironment accepts "local" or "production" in any case. An empty value means Local.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Local):
		return Local, nil
	case string(Production):
		return Production, nil
	default:
		return "", fmt.Errorf("%s is not a supported environment, use either %q or %q", s, Local, Production)
	}
}

func CurrentEnvironment() (Environment, error) {
	return ParseEnvironment(os.Getenv(EnvironmentVariable))
}
