package pipeline

import (
	"log/slog"

	"github.com/duplex3d/printflow/internal/artifact"
	"github.com/duplex3d/printflow/internal/gcode"
	"github.com/duplex3d/printflow/internal/toolchain"
)

// Stage names as they appear in diagnostics.
const (
	StageOrientMesh   = "orient-mesh"
	StageSliceUpper   = "slice-upper"
	StageSliceLower   = "slice-lower"
	StageConvertUpper = "convert-upper"
	StageConvertLower = "convert-lower"
)

// The orienter exits 2 when the part was oriented whole and 3 when it was
// split into up/down halves. Everything else must exit 0.
var (
	orienterSuccessCodes = []int{2, 3}
	zeroSuccessCode      = []int{0}
)

// Stages builds the ordered stage list for one run: orient, slice upper,
// slice lower (gated on the down mesh), convert upper, convert lower (gated
// on the down toolpath, inverted).
func Stages(tc toolchain.Toolchain, set artifact.Set) []Stage {
	return []Stage{
		{
			Name:         StageOrientMesh,
			Tool:         tc.Orienter,
			Args:         orienterArgs(set),
			SuccessCodes: orienterSuccessCodes,
		},
		{
			Name:         StageSliceUpper,
			Tool:         tc.Slicer,
			Args:         slicerArgs(tc, set.MeshUp),
			SuccessCodes: zeroSuccessCode,
			OnSuccess:    func() { logToolpathStats(set.ToolpathUp) },
		},
		{
			Name:         StageSliceLower,
			Tool:         tc.Slicer,
			Args:         slicerArgs(tc, set.MeshDown),
			SuccessCodes: zeroSuccessCode,
			GatePath:     set.MeshDown,
			SkipMessage:  "No down-side mesh was produced, skipping lower slicing",
		},
		{
			Name:         StageConvertUpper,
			Tool:         tc.Converter,
			Args:         converterArgs(set.ToolpathUp, set.OutputDir, false),
			SuccessCodes: zeroSuccessCode,
		},
		{
			Name:         StageConvertLower,
			Tool:         tc.Converter,
			Args:         converterArgs(set.ToolpathDown, set.OutputDir, true),
			SuccessCodes: zeroSuccessCode,
			GatePath:     set.ToolpathDown,
			SkipMessage:  "No down-side toolpath was produced, skipping lower program generation",
		},
	}
}

// orienterArgs builds the orienter invocation: non-simplex mode, the source
// model, and the output directory doubling as the log directory.
func orienterArgs(set artifact.Set) []string {
	return []string{
		"--non-simplex",
		"-i", set.InputModel,
		"-o", set.OutputDir,
		"-l", set.OutputDir,
	}
}

// slicerArgs builds the slicer invocation for one oriented mesh. The slicer
// writes the toolpath next to the mesh, swapping the extension for .gcode;
// that name is inferred by the artifact set, never passed here.
func slicerArgs(tc toolchain.Toolchain, mesh string) []string {
	return []string{
		"--export-gcode",
		"--dont-arrange",
		"--no-ensure-on-bed",
		"--info",
		"--load", tc.Profile,
		mesh,
	}
}

// converterArgs builds the toolpath-to-robot-program invocation. inverted is
// set only for the lower side.
func converterArgs(toolpath, outputDir string, inverted bool) []string {
	args := []string{toolpath, "--output", outputDir}
	if inverted {
		args = append(args, "--inverted=true")
	} else {
		args = append(args, "--inverted=false")
	}
	return args
}

// logToolpathStats surfaces the slicer's own estimates for a produced
// toolpath. Purely informational; parse failures are logged and ignored.
func logToolpathStats(toolpath string) {
	stats, err := gcode.ParseStats(toolpath)
	if err != nil {
		slog.Debug("could not read toolpath stats", "toolpath", toolpath, "error", err)
		return
	}

	slog.Info("toolpath sliced",
		"toolpath", toolpath,
		"estimated_printing_time", stats.EstimatedPrintingTime,
		"filament_cost", stats.TotalFilamentCost,
		"filament_used_g", stats.TotalFilamentUsedGrams,
	)
}
