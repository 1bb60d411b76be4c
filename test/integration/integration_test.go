//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"testing"

	"gaiadauto/pkg/docker"
	"gaiadauto/pkg/log"
	"gaiadauto/pkg/smoke"
	"gaiadauto/pkg/system"
)

func newClient(t *testing.T, binary string) (*docker.Client, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	logger := log.NewSlogLogger(slog.LevelDebug, &bytes.Buffer{})
	return docker.NewClient(binary, &system.LiveCommandRunner{}, logger, out), out
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not available")
	}
	if err := exec.Command("docker", "info").Run(); err != nil {
		t.Skip("docker daemon not reachable")
	}
}

func isRunning(t *testing.T, id docker.ContainerID) bool {
	t.Helper()
	out, err := exec.Command("docker", "ps", "-q", "--no-trunc", "--filter", "id="+string(id)).Output()
	if err != nil {
		t.Fatalf("docker ps: %v", err)
	}
	return strings.TrimSpace(string(out)) != ""
}

func TestWithContainer_RunsWorkAndKills(t *testing.T) {
	requireDocker(t)
	c, _ := newClient(t, "docker")

	var seen docker.ContainerID
	out, err := docker.WithContainer(context.Background(), c, []string{"-d", "--rm", "alpine", "sleep", "60"},
		func(ctx context.Context, id docker.ContainerID) (string, error) {
			seen = id
			if !isRunning(t, id) {
				t.Errorf("container %s should be running during work", id)
			}
			return smoke.Check{Shell: "echo", Script: "ok", Expected: "ok"}.Run(ctx, c, id)
		})
	if err != nil {
		t.Fatalf("WithContainer: %v", err)
	}
	if out != "ok" {
		t.Fatalf("got %q, want %q", out, "ok")
	}
	if isRunning(t, seen) {
		t.Fatalf("container %s should have been killed", seen)
	}
}

func TestWithContainer_FailurePrintsLogs(t *testing.T) {
	requireDocker(t)
	c, out := newClient(t, "docker")

	workErr := errors.New("work failed")
	var seen docker.ContainerID
	_, err := docker.WithContainer(context.Background(), c,
		[]string{"-d", "--rm", "alpine", "sh", "-c", "echo booted; sleep 60"},
		func(ctx context.Context, id docker.ContainerID) (int, error) {
			seen = id
			return 0, workErr
		})
	if err != workErr {
		t.Fatalf("got %v, want the original work error", err)
	}
	if !strings.Contains(out.String(), "booted") {
		t.Fatalf("expected container logs in output, got %q", out.String())
	}
	if isRunning(t, seen) {
		t.Fatalf("container %s should have been killed", seen)
	}
}

func TestWithContainer_MissingBinary(t *testing.T) {
	c, _ := newClient(t, "gaiad-auto-no-such-docker")

	called := false
	_, err := docker.WithContainer(context.Background(), c, []string{"-d", "alpine"},
		func(ctx context.Context, id docker.ContainerID) (int, error) {
			called = true
			return 0, nil
		})
	var cerr *docker.CommandError
	if !errors.As(err, &cerr) || cerr.Spawned() || cerr.Subcommand != "run" {
		t.Fatalf("expected spawn failure for run, got %v", err)
	}
	if called {
		t.Fatal("work must not run when the container never started")
	}
}
