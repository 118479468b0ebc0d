// Package env determines which environment the process runs in.
package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/modelprobe/internal/envvar"
)

// Environment identifies the runtime environment.
type Environment string

const (
	// Development is the default environment.
	Development Environment = "development"
	// Production enables JSON logging and quieter output.
	Production Environment = "production"
)

// FromEnv reads the environment from MODELPROBE_ENV.
// Unrecognized or empty values default to Development.
func FromEnv() Environment {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envvar.ModelprobeEnv))) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}
