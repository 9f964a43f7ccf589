package lock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seaview/shared/lock"
)

func TestMemoryLockMutualExclusion(t *testing.T) {
	l := lock.NewMemory(time.Second)

	var (
		inCritical int
		maxSeen    int
		mu         sync.Mutex
		wg         sync.WaitGroup
	)

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			release, err := l.Acquire(context.Background())
			assert.NoError(t, err)

			mu.Lock()
			inCritical++
			if inCritical > maxSeen {
				maxSeen = inCritical
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inCritical--
			mu.Unlock()

			release()
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestMemoryLockTimeout(t *testing.T) {
	l := lock.NewMemory(50 * time.Millisecond)

	release, err := l.Acquire(context.Background())
	assert.NoError(t, err)

	_, err = l.Acquire(context.Background())
	assert.ErrorIs(t, err, lock.ErrTimeout)

	release()

	release, err = l.Acquire(context.Background())
	assert.NoError(t, err)
	release()
}

func TestMemoryLockReleaseAllowsNextWaiter(t *testing.T) {
	l := lock.NewMemory(time.Second)

	release, err := l.Acquire(context.Background())
	assert.NoError(t, err)

	acquired := make(chan struct{})

	go func() {
		next, err := l.Acquire(context.Background())
		assert.NoError(t, err)

		defer next()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire succeeded while lock was held")
	case <-time.After(20 * time.Millisecond):
	}

	release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the released lock")
	}
}

func TestMemoryLockCancelledContext(t *testing.T) {
	l := lock.NewMemory(time.Second)

	release, err := l.Acquire(context.Background())
	assert.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
