package system

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"gaiadauto/pkg/runner"
)

// CommandRunner defines an interface for running commands.
// Re-exported from pkg/runner so callers only need this package.
type CommandRunner = runner.CommandRunner

// LiveCommandRunner runs commands on the live system. Stdout is captured and
// returned; stderr is passed through so diagnostics reach the operator.
type LiveCommandRunner struct {
	// Stderr receives the child's stderr. Defaults to os.Stderr.
	Stderr io.Writer
}

// Run spawns name with args and waits for it to exit. On a non-zero exit the
// captured stdout is returned together with the *exec.ExitError.
func (r *LiveCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	err := cmd.Run()
	return stdout.Bytes(), err
}
