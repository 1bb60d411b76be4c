// Package docker drives the container-management executable through a
// CommandRunner and supervises the lifecycle of a single container.
package docker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"gaiadauto/pkg/log"
	"gaiadauto/pkg/runner"
)

// DefaultBinary is the executable looked up on PATH when none is configured.
const DefaultBinary = "docker"

// DryRunContainer is the handle `run` yields in dry-run mode.
const DryRunContainer ContainerID = "dry-run"

var (
	// ErrInvalidUTF8 is returned when a command writes non-UTF-8 bytes to stdout.
	ErrInvalidUTF8 = errors.New("UTF-8 error decoding docker output")
	// ErrNoContainerID is returned when `run` succeeds but prints no handle.
	ErrNoContainerID = errors.New("docker run did not print a container id")
)

// ContainerID is the opaque handle printed by `docker run -d`.
type ContainerID string

// Short returns the 12 character prefix docker shows in `docker ps`.
func (id ContainerID) Short() string {
	if len(id) > 12 {
		return string(id[:12])
	}
	return string(id)
}

// CommandError describes a docker invocation that could not be spawned or
// exited with a non-zero status.
type CommandError struct {
	Binary     string
	Subcommand string
	Args       []string
	// ExitCode is -1 when the process could not be spawned or was killed
	// by a signal.
	ExitCode int
	Stdout   []byte
	Err      error

	spawned bool
}

func (e *CommandError) Error() string {
	if !e.spawned {
		return fmt.Sprintf("error invoking `%s %s`: %v", e.Binary, e.Subcommand, e.Err)
	}
	return fmt.Sprintf("`%s %s` exited with error status %d: args=%q stdout=%q",
		e.Binary, e.Subcommand, e.ExitCode, e.Args, strings.TrimRightFunc(string(e.Stdout), unicode.IsSpace))
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Spawned reports whether the process started at all.
func (e *CommandError) Spawned() bool {
	return e.spawned
}

// Client runs docker subcommands. The zero value is not usable; use NewClient.
type Client struct {
	Binary string
	Runner runner.CommandRunner
	Logger log.Logger
	// Out receives operator-facing output: container logs on failure and,
	// in dry-run mode, the commands that would have run.
	Out io.Writer
	// DryRun prints commands instead of executing them.
	DryRun bool
}

func NewClient(binary string, r runner.CommandRunner, logger log.Logger, out io.Writer) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{
		Binary: binary,
		Runner: r,
		Logger: logger,
		Out:    out,
	}
}

// Exec invokes `<binary> <subcommand> <args...>` and returns its stdout with
// trailing whitespace trimmed. A spawn failure, a non-zero exit and non-UTF-8
// output are all returned as errors; nothing is retried.
func (c *Client) Exec(ctx context.Context, subcommand string, args ...string) (string, error) {
	argv := append([]string{subcommand}, args...)
	if c.DryRun {
		fmt.Fprintf(c.Out, "+ %s %s\n", c.Binary, strings.Join(argv, " "))
		if subcommand == "run" {
			return string(DryRunContainer), nil
		}
		return "", nil
	}

	c.Logger.Debug("Executing docker command", "binary", c.Binary, "subcommand", subcommand, "args", args)
	out, err := c.Runner.Run(ctx, c.Binary, argv...)
	if err != nil {
		cerr := &CommandError{
			Binary:     c.Binary,
			Subcommand: subcommand,
			Args:       args,
			ExitCode:   -1,
			Stdout:     out,
			Err:        err,
		}
		var coded runner.ExitCoder
		if errors.As(err, &coded) {
			cerr.ExitCode = coded.ExitCode()
			cerr.spawned = true
		}
		return "", cerr
	}

	if !utf8.Valid(out) {
		return "", fmt.Errorf("`%s %s`: %w", c.Binary, subcommand, ErrInvalidUTF8)
	}
	return strings.TrimRightFunc(string(out), unicode.IsSpace), nil
}

// Run starts a container and returns its handle.
func (c *Client) Run(ctx context.Context, args ...string) (ContainerID, error) {
	out, err := c.Exec(ctx, "run", args...)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", ErrNoContainerID
	}
	return ContainerID(out), nil
}

// Logs returns everything the container has written to stdout so far.
func (c *Client) Logs(ctx context.Context, id ContainerID) (string, error) {
	return c.Exec(ctx, "logs", string(id))
}

// Kill stops the container.
func (c *Client) Kill(ctx context.Context, id ContainerID) error {
	_, err := c.Exec(ctx, "kill", string(id))
	return err
}

// ExecIn runs command inside a running container and returns its stdout.
func (c *Client) ExecIn(ctx context.Context, id ContainerID, command ...string) (string, error) {
	return c.Exec(ctx, "exec", append([]string{string(id)}, command...)...)
}
