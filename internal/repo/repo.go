package repo

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidMessage = errors.New("invalid message: message cannot be nil")
	ErrInvalidUserID  = errors.New("invalid user ID: cannot be empty")
)

const (
	defaultWriteTimeout = 5 * time.Second
	defaultReadTimeout  = 30 * time.Second
)

// ensureTimeout bounds an operation that arrived without a deadline.
func ensureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hadDeadline := ctx.Deadline(); hadDeadline {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
