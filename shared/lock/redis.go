package lock

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	redisLockKey       = "admission:lock"
	redisLockTTL       = 30 * time.Second
	redisRetryInterval = 50 * time.Millisecond
)

// releaseScript deletes the lock only if it is still held by the caller, so a
// holder that outlived its TTL cannot release a successor's lock.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

// redisLock claims a shared key with SET NX PX and polls until it wins or the
// wait budget runs out. Unlike the in-memory lock it coordinates admission
// across process instances.
type redisLock struct {
	client *goRedis.Client
	wait   time.Duration
}

func NewRedis(client *goRedis.Client, wait time.Duration) Lock {
	return &redisLock{
		client: client,
		wait:   wait,
	}
}

func (l *redisLock) Acquire(ctx context.Context) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, redisLockKey, token, redisLockTTL).Result()
		if err == nil && ok {
			return l.releaser(token), nil
		}

		if err != nil {
			log.Error().Err(err).Msg("failed to claim admission lock, retrying")
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return nil, ErrTimeout
			}

			return nil, ctx.Err() //nolint:wrapcheck
		case <-time.After(redisRetryInterval):
		}
	}
}

func (l *redisLock) releaser(token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := l.client.Eval(ctx, releaseScript, []string{redisLockKey}, token).Err(); err != nil {
			log.Error().Err(err).Msg("failed to release admission lock, TTL will reclaim it")
		}
	}
}
