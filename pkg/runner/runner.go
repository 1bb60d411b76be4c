// Package runner defines interfaces for command execution.
// This package exists to break import cycles between testing and system packages.
package runner

import "context"

// CommandRunner runs an external executable with discrete argument tokens
// and returns what it wrote to stdout. Implementations must never route the
// arguments through a shell.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExitCoder is satisfied by errors that carry a process exit status,
// such as *exec.ExitError.
type ExitCoder interface {
	error
	ExitCode() int
}
