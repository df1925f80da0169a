// Package artifact derives the on-disk names of every file the pipeline
// produces or consumes. All derived paths follow the fixed convention
// {output_dir}/{stem}_{up|down}.{ext}; the downstream tools share it, so
// the rules here must not drift.
package artifact

import (
	"path/filepath"
	"strings"
)

// Orientation is one of the two sides a model may be split into.
type Orientation string

const (
	Up   Orientation = "up"
	Down Orientation = "down"
)

// ToolpathExt is the extension the slicer gives its output, inferred rather
// than passed on the command line.
const ToolpathExt = "gcode"

// ProgramExt is the extension of the generated robot programs.
const ProgramExt = "pg"

// Set holds every derived path for one pipeline run, computed once up front
// from the input model and output directory. It carries no filesystem state:
// whether the down-side files exist is checked on disk when each conditional
// stage is reached.
type Set struct {
	InputModel string
	OutputDir  string
	Stem       string

	// Oriented meshes, deposited by the orientation stage. MeshDown is
	// optional: it only exists when the tool split the part.
	MeshUp   string
	MeshDown string

	// Toolpaths, deposited by the slicer next to each mesh.
	ToolpathUp   string
	ToolpathDown string
}

// Derive computes the Set for inputModel rooted at outputDir. Pure function:
// it never touches the filesystem.
func Derive(inputModel, outputDir string) Set {
	stem := Stem(inputModel)
	ext := meshExt(inputModel)

	return Set{
		InputModel:   inputModel,
		OutputDir:    outputDir,
		Stem:         stem,
		MeshUp:       filepath.Join(outputDir, stem+"_"+string(Up)+"."+ext),
		MeshDown:     filepath.Join(outputDir, stem+"_"+string(Down)+"."+ext),
		ToolpathUp:   filepath.Join(outputDir, stem+"_"+string(Up)+"."+ToolpathExt),
		ToolpathDown: filepath.Join(outputDir, stem+"_"+string(Down)+"."+ToolpathExt),
	}
}

// Stem returns the naming stem of path: its basename truncated at the FIRST
// dot. The first-dot rule is deliberate: the external tools name their
// outputs the same way, so "archive.tar.gz" must stem to "archive" here too,
// even though that differs from filepath.Ext semantics. A name without a dot
// is returned whole.
func Stem(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// meshExt returns the extension of the source model without its leading dot,
// falling back to "stl" for extensionless inputs so derived names stay
// well-formed.
func meshExt(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 && i+1 < len(base) {
		return base[i+1:]
	}
	return "stl"
}

// Mesh returns the oriented mesh path for the given side.
func (s Set) Mesh(o Orientation) string {
	if o == Down {
		return s.MeshDown
	}
	return s.MeshUp
}

// Toolpath returns the toolpath path for the given side.
func (s Set) Toolpath(o Orientation) string {
	if o == Down {
		return s.ToolpathDown
	}
	return s.ToolpathUp
}
