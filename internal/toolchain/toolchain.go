// Package toolchain locates the external tools the pipeline drives. Tools
// are resolved once per run; nothing is cached across runs.
package toolchain

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/duplex3d/printflow/internal/config"
	"github.com/duplex3d/printflow/internal/xfs"
)

// Basenames handed to the search service, and the converter command expected
// on PATH.
const (
	SlicerBasename   = "prusa-slicer-console"
	OrienterBasename = "meshtweaker"
	ProfileBasename  = "duplex_profile.ini"
	ConverterCommand = "gcode2as"
)

// windowsSlicerPath is the stock PrusaSlicer install location; on Windows the
// slicer is not searched for.
const windowsSlicerPath = `C:\Program Files\Prusa3D\PrusaSlicer\prusa-slicer-console.exe`

// Toolchain holds the resolved location of every external collaborator.
// Immutable once built; constructed at startup and passed into the pipeline.
type Toolchain struct {
	Slicer    string
	Orienter  string
	Converter string
	Profile   string
}

// Resolver resolves a Toolchain for the current host.
type Resolver struct {
	Search Search

	// GOOS is the platform family to resolve for, normally runtime.GOOS.
	GOOS string

	// Out receives the user-facing resolution messages.
	Out io.Writer

	// Overrides short-circuit discovery for individual tools.
	Overrides config.ToolsConfig
}

// Resolve locates the slicer, the orienter, the converter and the slicing
// profile. A slicer or orienter that cannot be found is fatal; a missing
// profile file is reported but deliberately not fatal, since the slicer
// itself is the authority on whether it can load the profile.
func (r *Resolver) Resolve(ctx context.Context) (Toolchain, error) {
	slicer, err := r.resolveSlicer(ctx)
	if err != nil {
		return Toolchain{}, err
	}

	orienter, err := r.resolveTool(ctx, "orienter", r.Overrides.Orienter, OrienterBasename)
	if err != nil {
		return Toolchain{}, err
	}

	converter := r.Overrides.Converter
	if converter == "" {
		// Assumed reachable through PATH, never searched for.
		converter = ConverterCommand
	}

	profile, err := r.resolveProfile(ctx)
	if err != nil {
		return Toolchain{}, err
	}

	tc := Toolchain{
		Slicer:    slicer,
		Orienter:  orienter,
		Converter: converter,
		Profile:   profile,
	}

	slog.Debug("toolchain resolved",
		"slicer", tc.Slicer,
		"orienter", tc.Orienter,
		"converter", tc.Converter,
		"profile", tc.Profile,
	)

	return tc, nil
}

func (r *Resolver) resolveSlicer(ctx context.Context) (string, error) {
	if r.Overrides.Slicer != "" {
		return xfs.ExpandTilde(r.Overrides.Slicer), nil
	}

	if r.GOOS == "windows" {
		return windowsSlicerPath, nil
	}

	return r.locateRequired(ctx, "slicer", SlicerBasename)
}

func (r *Resolver) resolveTool(ctx context.Context, role, override, basename string) (string, error) {
	if override != "" {
		return xfs.ExpandTilde(override), nil
	}
	return r.locateRequired(ctx, role, basename)
}

func (r *Resolver) locateRequired(ctx context.Context, role, basename string) (string, error) {
	path, err := r.Search.Locate(ctx, basename)
	if err != nil {
		return "", fmt.Errorf("toolchain: searching for %s: %w", role, err)
	}
	if path == "" {
		return "", fmt.Errorf("toolchain: %s (%s): %w", role, basename, ErrToolNotFound)
	}
	return path, nil
}

func (r *Resolver) resolveProfile(ctx context.Context) (string, error) {
	profile := r.Overrides.Profile
	if profile == "" {
		found, err := r.Search.Locate(ctx, ProfileBasename)
		if err != nil {
			return "", fmt.Errorf("toolchain: searching for profile: %w", err)
		}
		profile = found
	} else {
		profile = xfs.ExpandTilde(profile)
	}

	// Existence is reported either way but never gates the run.
	switch {
	case profile == "":
		fmt.Fprintf(r.Out, "No slicing profile (%s) found on this host\n", ProfileBasename)
		slog.Warn("profile file not found", "basename", ProfileBasename)
	case xfs.IsRegularFile(profile):
		fmt.Fprintf(r.Out, "Using slicing profile %s\n", profile)
	default:
		fmt.Fprintf(r.Out, "Slicing profile %s does not exist, the slicer will likely fail to load it\n", profile)
		slog.Warn("profile file missing", "path", profile)
	}

	return profile, nil
}
