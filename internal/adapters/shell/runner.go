// Package shell provides the process runner adapter on os/exec.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements ports.Runner using os/exec. The working directory is
// always taken from the command; the process-wide working directory is never
// touched.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes the command and blocks until it finishes. Output is captured,
// not streamed: every invocation in this tool is short-lived and its output
// is parsed afterwards.
func (r *Runner) Run(ctx context.Context, command ports.Command) (ports.RunResult, error) {
	r.logger.Debug("exec: " + command.Name + " " + strings.Join(command.Args, " "))

	cmd := exec.CommandContext(ctx, command.Name, command.Args...) //nolint:gosec // invocations are assembled by adapters, not user input
	cmd.Dir = command.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ports.RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		startErr := zerr.Wrap(err, "failed to start process")
		return result, zerr.With(startErr, "command", command.Name)
	}

	return result, nil
}

// LookPath reports whether the executable can be found on PATH.
func (r *Runner) LookPath(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return zerr.With(zerr.Wrap(err, "executable not found"), "command", name)
	}
	return nil
}
