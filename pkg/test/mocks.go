package test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Call is a single invocation observed by MockCommandRunner.
type Call struct {
	Name string
	Args []string
}

// Subcommand returns the first argument, which for docker is the subcommand.
func (c Call) Subcommand() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// MockCommandRunner is a shared mock implementation of runner.CommandRunner for testing.
// Responses and errors are looked up by the full command line first
// ("docker logs abc"), then by the first argument ("logs").
type MockCommandRunner struct {
	Calls     []Call            // Every invocation, in order
	Commands  []string          // Every invocation as a space-joined command line
	Responses map[string][]byte // Stdout by command line or first argument
	Errors    map[string]error  // Error by command line or first argument
}

// NewMockCommandRunner creates a new MockCommandRunner with initialized maps.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Calls:     []Call{},
		Commands:  []string{},
		Responses: make(map[string][]byte),
		Errors:    make(map[string]error),
	}
}

// CommandLine joins name and args with spaces. It is only used as a lookup key.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// Run simulates running a command and returns the configured response or error.
func (r *MockCommandRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}
	r.Calls = append(r.Calls, call)
	line := CommandLine(name, args...)
	r.Commands = append(r.Commands, line)

	keys := []string{line}
	if len(args) > 0 {
		keys = append(keys, args[0])
	}
	for _, key := range keys {
		if err, ok := r.Errors[key]; ok {
			return r.Responses[key], err
		}
		if resp, ok := r.Responses[key]; ok {
			return resp, nil
		}
	}
	return nil, nil
}

// SetResponse configures stdout for a command line or first argument.
func (r *MockCommandRunner) SetResponse(key string, response []byte) {
	r.Responses[key] = response
}

// SetError configures an error for a command line or first argument.
func (r *MockCommandRunner) SetError(key string, err error) {
	r.Errors[key] = err
}

// CallsTo returns the calls whose first argument is subcommand.
func (r *MockCommandRunner) CallsTo(subcommand string) []Call {
	var calls []Call
	for _, c := range r.Calls {
		if c.Subcommand() == subcommand {
			calls = append(calls, c)
		}
	}
	return calls
}

// Subcommands returns the first argument of every call, in order.
func (r *MockCommandRunner) Subcommands() []string {
	subs := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		subs = append(subs, c.Subcommand())
	}
	return subs
}

// ExitError mimics *exec.ExitError for a process that exited with Code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the simulated exit status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// MockLogger is a shared mock implementation of Logger for testing.
// It captures logged messages for verification.
type MockLogger struct {
	Messages []string
	Level    slog.Level
}

// NewMockLogger creates a new MockLogger with the specified level.
func NewMockLogger(level slog.Level) *MockLogger {
	return &MockLogger{
		Messages: []string{},
		Level:    level,
	}
}

// Debug captures debug messages.
func (l *MockLogger) Debug(msg string, args ...any) {
	if l.Level <= slog.LevelDebug {
		l.captureMessage("DEBUG", msg, args...)
	}
}

// Info captures info messages.
func (l *MockLogger) Info(msg string, args ...any) {
	if l.Level <= slog.LevelInfo {
		l.captureMessage("INFO", msg, args...)
	}
}

// Warn captures warn messages.
func (l *MockLogger) Warn(msg string, args ...any) {
	if l.Level <= slog.LevelWarn {
		l.captureMessage("WARN", msg, args...)
	}
}

// Error captures error messages.
func (l *MockLogger) Error(msg string, args ...any) {
	if l.Level <= slog.LevelError {
		l.captureMessage("ERROR", msg, args...)
	}
}

func (l *MockLogger) captureMessage(level, msg string, args ...any) {
	buf := &bytes.Buffer{}
	buf.WriteString(level)
	buf.WriteString(": ")
	buf.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(buf, " %v=%v", args[i], args[i+1])
	}
	l.Messages = append(l.Messages, buf.String())
}

// HasMessage checks if any captured message contains the given substring.
func (l *MockLogger) HasMessage(substring string) bool {
	for _, msg := range l.Messages {
		if strings.Contains(msg, substring) {
			return true
		}
	}
	return false
}
