package test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// SetupMockFilesystem creates an in-memory filesystem for testing.
// The caller is responsible for setting system.AppFs if needed.
func SetupMockFilesystem(t *testing.T) afero.Fs {
	t.Helper()
	return afero.NewMemMapFs()
}

// CreateTestFile creates a file with content in the test filesystem.
func CreateTestFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	err := fs.MkdirAll(filepath.Dir(path), 0755)
	require.NoError(t, err)
	err = afero.WriteFile(fs, path, []byte(content), 0644)
	require.NoError(t, err)
}

// AssertCommandExecuted checks that a command line was executed by the mock runner.
func AssertCommandExecuted(t *testing.T, runner *MockCommandRunner, command string) {
	t.Helper()
	require.Contains(t, runner.Commands, command, "Command should have been executed: %s", command)
}

// AssertCommandNotExecuted checks that a command line was not executed.
func AssertCommandNotExecuted(t *testing.T, runner *MockCommandRunner, command string) {
	t.Helper()
	require.NotContains(t, runner.Commands, command, "Command should not have been executed: %s", command)
}

// AssertSubcommandCount checks how many times a docker subcommand ran.
func AssertSubcommandCount(t *testing.T, runner *MockCommandRunner, subcommand string, want int) {
	t.Helper()
	require.Len(t, runner.CallsTo(subcommand), want, "unexpected number of %q calls: %v", subcommand, runner.Commands)
}

// AssertLogContains checks that the logger captured a message containing the substring.
func AssertLogContains(t *testing.T, logger *MockLogger, substring string) {
	t.Helper()
	require.True(t, logger.HasMessage(substring), "Log should contain: %s", substring)
}
