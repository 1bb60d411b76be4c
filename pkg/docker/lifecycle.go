package docker

import (
	"context"
	"errors"
	"fmt"
)

// ErrCleanup marks a failure to kill a container after the work succeeded.
var ErrCleanup = errors.New("container cleanup failed")

// Work is the unit of work run while a container is up.
type Work[R any] func(ctx context.Context, id ContainerID) (R, error)

// WithContainer invokes `docker run` with startArgs, calls work once the
// container has booted and kills the container after work completes.
//
// The kill is issued exactly once on every path after a successful start,
// including when work returns an error, panics or calls runtime.Goexit. On
// failure the container's logs are printed to c.Out before the kill. A work
// error is returned unchanged and a panic is re-raised; failures while
// fetching logs or killing the container are logged and never mask it. When
// work succeeds but the kill fails, the returned error wraps ErrCleanup.
func WithContainer[R any](ctx context.Context, c *Client, startArgs []string, work Work[R]) (result R, err error) {
	id, err := c.Run(ctx, startArgs...)
	if err != nil {
		return result, err
	}
	c.Logger.Info("Container started", "container", id.Short())

	completed := false
	defer func() {
		recovered := recover()
		// runtime.Goexit (t.FailNow inside work) unwinds without a panic value.
		failed := recovered != nil || err != nil || !completed

		// The caller's context may already be cancelled; the container still
		// has to go.
		cleanupCtx := context.WithoutCancel(ctx)
		if failed {
			c.printLogs(cleanupCtx, id)
		}

		if kerr := c.Kill(cleanupCtx, id); kerr != nil {
			if failed {
				c.Logger.Error("Failed to kill container after work failure", "container", id.Short(), "error", kerr)
			} else {
				var zero R
				result = zero
				err = fmt.Errorf("%w: %w", ErrCleanup, kerr)
			}
		} else {
			c.Logger.Info("Container killed", "container", id.Short())
		}

		if recovered != nil {
			panic(recovered)
		}
	}()

	result, err = work(ctx, id)
	completed = true
	return result, err
}

func (c *Client) printLogs(ctx context.Context, id ContainerID) {
	logs, err := c.Logs(ctx, id)
	if err != nil {
		c.Logger.Error("Failed to fetch container logs", "container", id.Short(), "error", err)
		return
	}
	fmt.Fprintf(c.Out, "\n---- docker logs %s ----\n", id.Short())
	fmt.Fprintln(c.Out, logs)
	fmt.Fprintln(c.Out, "---- end docker logs ----")
}
