// Package pipeline runs the fixed sequence of external stages that turns an
// oriented mesh into robot programs. The sequencing contract is strict:
// stages run in order, conditional stages are gated on their input artifact
// existing, and the first exit code outside a stage's success set terminates
// the run with that code. Nothing is retried and nothing already on disk is
// cleaned up.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/duplex3d/printflow/internal/command"
)

// ErrStageTimeout reports a stage that exceeded the configured bound.
var ErrStageTimeout = errors.New("stage timed out")

// Sequencer drives an ordered stage list to completion or first failure.
type Sequencer struct {
	Runner command.Runner

	// Out receives the user-facing stage messages.
	Out io.Writer

	// Timeout bounds each stage. Zero imposes no bound.
	Timeout time.Duration
}

// Run executes stages in order and returns the pipeline's exit status along
// with the per-stage outcome history. The status is 0 when the terminal
// state is reached, otherwise the failing stage's exit code.
func (s *Sequencer) Run(ctx context.Context, stages []Stage) (int, []Outcome) {
	history := make([]Outcome, 0, len(stages))

	for _, stage := range stages {
		outcome := s.evaluate(ctx, stage)
		history = append(history, outcome)

		switch outcome.Kind {
		case Skipped:
			fmt.Fprintln(s.Out, stage.SkipMessage)
			slog.Info("stage skipped", "stage", stage.Name, "gate", stage.GatePath)

		case Failed:
			fmt.Fprintf(s.Out, "Stage %s failed with exit code %d, aborting\n", stage.Name, outcome.Code)
			return outcome.Code, history

		case Advanced:
			slog.Info("stage completed", "stage", stage.Name, "exit_code", outcome.Code)
			if stage.OnSuccess != nil {
				stage.OnSuccess()
			}
		}
	}

	fmt.Fprintln(s.Out, "Pipeline finished, robot programs written")
	return 0, history
}

// evaluate runs a single stage and classifies its outcome.
func (s *Sequencer) evaluate(ctx context.Context, stage Stage) Outcome {
	if stage.GatePath != "" {
		if _, err := os.Stat(stage.GatePath); err != nil {
			return Outcome{Stage: stage.Name, Kind: Skipped}
		}
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	slog.Debug("running stage", "stage", stage.Name, "tool", stage.Tool, "args", stage.Args)

	stdout, stderr, code, err := s.Runner.Run(ctx, stage.Tool, stage.Args, nil)
	if len(stdout) > 0 {
		slog.Debug("stage output", "stage", stage.Name, "stdout", string(stdout))
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		slog.Error("stage timed out", "stage", stage.Name, "timeout", s.Timeout,
			"error", fmt.Errorf("%w after %s", ErrStageTimeout, s.Timeout))
		return Outcome{Stage: stage.Name, Kind: Failed, Code: 1}
	}

	if err != nil || code < 0 {
		// The tool never ran, or died to a signal rather than an exit.
		slog.Error("stage could not be run", "stage", stage.Name, "tool", stage.Tool, "error", err)
		return Outcome{Stage: stage.Name, Kind: Failed, Code: 1}
	}

	if !slices.Contains(stage.SuccessCodes, code) {
		if len(stderr) > 0 {
			slog.Error("stage failed", "stage", stage.Name, "exit_code", code, "stderr", string(stderr))
		}
		return Outcome{Stage: stage.Name, Kind: Failed, Code: code}
	}

	return Outcome{Stage: stage.Name, Kind: Advanced, Code: code}
}
