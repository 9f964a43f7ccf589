package lock

//go:generate go run go.uber.org/mock/mockgen -source=./lock.go -destination=./mocks/lock_mock.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"seaview/config"

	goRedis "github.com/redis/go-redis/v9"
)

var (
	// ErrTimeout is returned when the lock could not be acquired within the
	// configured wait budget.
	ErrTimeout = errors.New("timed out waiting for admission lock")
)

const (
	ProviderMemory = "memory"
	ProviderRedis  = "redis"
)

// Lock serializes admission decisions: only one holder at a time, system-wide.
// Acquire blocks until the lock is held or the wait budget expires, and
// returns a release func that must be called on every exit path.
type Lock interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// New selects the lock implementation from configuration. The in-memory lock
// only serializes within a single process; the redis lock is the substitute
// for multi-instance deployments.
func New(cfg *config.Config, redisClient *goRedis.Client) Lock {
	wait := time.Duration(cfg.Admission.LockWaitSeconds) * time.Second

	if cfg.Admission.LockProvider == ProviderRedis {
		log.Info().Dur("wait", wait).Msg("Using redis admission lock")

		return NewRedis(redisClient, wait)
	}

	log.Info().Dur("wait", wait).Msg("Using in-memory admission lock")

	return NewMemory(wait)
}
