package env

import (
	"os"
	"strings"

	"github.com/duplex3d/printflow/internal/envvar"
)

// Environment identifies the runtime environment the driver is operating in.
type Environment string

const (
	// Development enables debug-level, human-oriented logging.
	Development Environment = "development"

	// Production keeps logging at info level.
	Production Environment = "production"
)

// FromEnv reads the environment from PRINTFLOW_ENV, defaulting to production.
func FromEnv() Environment {
	switch strings.ToLower(os.Getenv(envvar.PrintflowEnv)) {
	case "development", "dev":
		return Development
	default:
		return Production
	}
}

// IsDevelopment reports whether e is the development environment.
func (e Environment) IsDevelopment() bool {
	return e == Development
}
