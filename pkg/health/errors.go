package health

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCheckFailed is wrapped by Response.Err with the failed check names.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check still running at the deadline.
	ErrCheckTimeout = errors.New("health: check timed out")
)

// checkError normalizes the error of a failed check. A check interrupted
// by the run deadline is reported as ErrCheckTimeout.
func checkError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCheckTimeout, err)
	}
	return err
}
