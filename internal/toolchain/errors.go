package toolchain

import "errors"

// Error definitions for the toolchain package.
var (
	ErrToolNotFound = errors.New("tool not found")
)
