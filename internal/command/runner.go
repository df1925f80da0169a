// Package command wraps external process execution behind an interface so
// the resolver and the pipeline can be tested without spawning anything.
package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// Runner is the interface for running external commands. The exit code is
// returned separately from err: err is reserved for the process failing to
// run at all (missing binary, permission, cancelled context).
type Runner interface {
	Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, exitCode int, err error)
}

// ExecRunner uses os/exec.
type ExecRunner struct{}

// Run runs a command to completion, capturing its output.
func (ExecRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return outBuf.Bytes(), errBuf.Bytes(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return outBuf.Bytes(), errBuf.Bytes(), 0, err
	}

	return outBuf.Bytes(), errBuf.Bytes(), 0, nil
}
