package system

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"gaiadauto/pkg/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX userland")
	}
}

func TestLiveCommandRunner_CapturesStdout(t *testing.T) {
	skipOnWindows(t)
	r := &LiveCommandRunner{Stderr: &bytes.Buffer{}}

	out, err := r.Run(context.Background(), "echo", "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(out))
}

func TestLiveCommandRunner_ArgumentsAreNotShellInterpreted(t *testing.T) {
	skipOnWindows(t)
	r := &LiveCommandRunner{Stderr: &bytes.Buffer{}}

	payloads := []string{
		"; rm -rf /",
		"$(id)",
		"`whoami`",
		"a && b || c",
		"quote's \"here\"",
		"*",
	}
	for _, payload := range payloads {
		out, err := r.Run(context.Background(), "printf", "%s", payload)
		require.NoError(t, err)
		assert.Equal(t, payload, string(out), "argument should reach the process verbatim")
	}
}

func TestLiveCommandRunner_StderrIsNotCaptured(t *testing.T) {
	skipOnWindows(t)
	var stderr bytes.Buffer
	r := &LiveCommandRunner{Stderr: &stderr}

	out, err := r.Run(context.Background(), "sh", "-c", "echo diag >&2; echo result")
	require.NoError(t, err)
	assert.Equal(t, "result\n", string(out))
	assert.Equal(t, "diag\n", stderr.String())
}

func TestLiveCommandRunner_NonZeroExit(t *testing.T) {
	skipOnWindows(t)
	r := &LiveCommandRunner{Stderr: &bytes.Buffer{}}

	out, err := r.Run(context.Background(), "sh", "-c", "echo partial; exit 3")
	require.Error(t, err)
	assert.Equal(t, "partial\n", string(out))

	var coded runner.ExitCoder
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, 3, coded.ExitCode())
}

func TestLiveCommandRunner_MissingExecutable(t *testing.T) {
	r := &LiveCommandRunner{Stderr: &bytes.Buffer{}}

	_, err := r.Run(context.Background(), "gaiad-auto-no-such-binary")
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))

	var coded runner.ExitCoder
	assert.False(t, errors.As(err, &coded))
}
