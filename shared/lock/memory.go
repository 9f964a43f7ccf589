package lock

import (
	"context"
	"time"
)

// memoryLock is a semaphore of size one. Waiters queue on the channel in
// arrival order, which gives the strict one-at-a-time admission ordering the
// booking flow depends on.
type memoryLock struct {
	slot chan struct{}
	wait time.Duration
}

func NewMemory(wait time.Duration) Lock {
	return &memoryLock{
		slot: make(chan struct{}, 1),
		wait: wait,
	}
}

func (l *memoryLock) Acquire(ctx context.Context) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	select {
	case l.slot <- struct{}{}:
		return func() { <-l.slot }, nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}

		return nil, ctx.Err() //nolint:wrapcheck
	}
}
