// Package ports defines the core interfaces for the application.
package ports

import "context"

// Command describes one external process invocation. Dir is always explicit;
// no component ever depends on the ambient process working directory.
type Command struct {
	// Name is the executable to invoke.
	Name string

	// Args are the arguments, not including the executable name.
	Args []string

	// Dir is the working directory for the invocation. Empty means the
	// caller does not care.
	Dir string
}

// RunResult captures the outcome of a finished process.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded reports whether the process exited zero.
func (r RunResult) Succeeded() bool {
	return r.ExitCode == 0
}

// Runner synchronously invokes external executables. Every other adapter
// touches version control, package managers, and copy utilities only through
// this primitive.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes the command and blocks until it finishes. A non-zero exit
	// is reported through RunResult.ExitCode, not as an error; the error is
	// reserved for failures to start the process at all.
	Run(ctx context.Context, cmd Command) (RunResult, error)

	// LookPath reports whether an executable is available on the system.
	LookPath(name string) error
}
