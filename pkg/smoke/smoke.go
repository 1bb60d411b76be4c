// Package smoke runs a script inside a running container and checks what it
// printed.
package smoke

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"gaiadauto/pkg/docker"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Executor runs a command inside a container. *docker.Client implements it.
type Executor interface {
	ExecIn(ctx context.Context, id docker.ContainerID, command ...string) (string, error)
}

// Check describes the script to run and the stdout it must produce.
type Check struct {
	Shell    string
	Script   string
	Expected string
}

// Command is the argv executed inside the container.
func (c Check) Command() []string {
	return []string{c.Shell, c.Script}
}

// Run executes the script in container id and returns its output. A
// mismatch with Expected is reported as a *MismatchError.
func (c Check) Run(ctx context.Context, exec Executor, id docker.ContainerID) (string, error) {
	out, err := exec.ExecIn(ctx, id, c.Command()...)
	if err != nil {
		return "", fmt.Errorf("running smoke script %s: %w", c.Script, err)
	}
	return out, c.Verify(out)
}

// Verify compares actual with Expected, ignoring trailing whitespace on both.
func (c Check) Verify(actual string) error {
	want := trimTrailing(c.Expected)
	got := trimTrailing(actual)
	if want == got {
		return nil
	}
	return &MismatchError{Script: c.Script, Expected: want, Actual: got}
}

// MismatchError reports smoke output that differs from the expectation.
type MismatchError struct {
	Script   string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(e.Expected, e.Actual, false)
	return strings.Join([]string{
		fmt.Sprintf("smoke script %s output mismatch: expected %q, got %q", e.Script, e.Expected, e.Actual),
		"--- diff ---",
		dmp.DiffPrettyText(diffs),
		"--- end diff ---",
	}, "\n")
}

func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
