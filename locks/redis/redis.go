package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/go-redsync/redsync/v4"
	redsyncgoredis "github.com/go-redsync/redsync/v4/redis/goredis/v8"

	"github.com/imasker/warden/config"
	"github.com/imasker/warden/locks/iface"
	"github.com/imasker/warden/log"
	"github.com/imasker/warden/utils"
)

var (
	ErrRedisLockFailed   = errors.New("redis lock: failed to acquire lock")
	ErrRedisUnlockFailed = errors.New("redis lock: lock was no longer held")
)

// Lock is a per-key lease in Redis, acquired through redsync with a go-redis client
type Lock struct {
	client  redis.UniversalClient
	redsync *redsync.Redsync
	options []redsync.Option
	prefix  string
}

var _ iface.Locker = (*Lock)(nil)

// New connects to the Redis behind cnf.Lock
func New(cnf *config.Config) (*Lock, error) {
	if cnf.LockTries <= 0 {
		return nil, errors.New("lock tries must be > 0")
	}

	opt, err := utils.ParseRedisURL(cnf.Lock)
	if err != nil {
		return nil, err
	}
	if cnf.Redis != nil {
		opt.MasterName = cnf.Redis.MasterName
	}

	return NewWithClient(cnf, redis.NewUniversalClient(opt)), nil
}

// NewWithClient builds a Lock around an existing client
func NewWithClient(cnf *config.Config, client redis.UniversalClient) *Lock {
	return &Lock{
		client:  client,
		redsync: redsync.New(redsyncgoredis.NewPool(client)),
		options: Options(cnf),
		prefix:  cnf.LockPrefix,
	}
}

// Options translates the lock settings of cnf into redsync options
func Options(cnf *config.Config) []redsync.Option {
	tries := cnf.LockTries
	if tries <= 0 {
		tries = 1
	}
	return []redsync.Option{
		redsync.WithExpiry(cnf.LockExpiry()),
		redsync.WithTries(tries),
		redsync.WithRetryDelay(cnf.RetryDelay()),
		redsync.WithGenValueFunc(func() (string, error) {
			return utils.GenerateID("")
		}),
	}
}

func (l *Lock) Name() string {
	return "redis"
}

func (l *Lock) Acquire(ctx context.Context, key string) (iface.Unlock, error) {
	return Acquire(ctx, l.redsync, utils.GetLockName(l.prefix, key), l.options...)
}

// Close releases the underlying client
func (l *Lock) Close() error {
	return l.client.Close()
}

// Acquire takes the redsync mutex called name and returns its release function.
// It is shared with the redigo backend, which differs only in the pool.
func Acquire(ctx context.Context, rs *redsync.Redsync, name string, options ...redsync.Option) (iface.Unlock, error) {
	mutex := rs.NewMutex(name, options...)

	if err := mutex.LockContext(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Logger.Warn("Failed to acquire redis lock %s: %s", name, err)
		return nil, fmt.Errorf("%w: %v", ErrRedisLockFailed, err)
	}

	var once sync.Once
	return func() (err error) {
		once.Do(func() {
			var ok bool
			ok, err = mutex.UnlockContext(context.Background())
			if err == nil && !ok {
				err = ErrRedisUnlockFailed
			}
		})
		return err
	}, nil
}
