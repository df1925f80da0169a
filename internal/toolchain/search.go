package toolchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/duplex3d/printflow/internal/command"
)

// Search finds a file on the host by basename. It returns the empty string,
// not an error, when nothing matches.
type Search interface {
	Locate(ctx context.Context, basename string) (string, error)
}

// LocateSearch discovers files through the system locate(1) database.
type LocateSearch struct {
	Runner command.Runner
}

// Locate runs locate and returns the first match.
func (s LocateSearch) Locate(ctx context.Context, basename string) (string, error) {
	stdout, _, code, err := s.Runner.Run(ctx, "locate", []string{basename}, nil)
	if err != nil {
		return "", fmt.Errorf("locate %s: %w", basename, err)
	}
	// locate exits 1 when the database has no match.
	if code == 1 {
		return "", nil
	}
	if code != 0 {
		return "", fmt.Errorf("locate %s: exit code %d", basename, code)
	}

	for _, line := range strings.Split(string(stdout), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}

	return "", nil
}
