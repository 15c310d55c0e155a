package redigo

import (
	"context"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	redsyncredigo "github.com/go-redsync/redsync/v4/redis/redigo"
	"github.com/gomodule/redigo/redis"

	"github.com/imasker/warden/config"
	"github.com/imasker/warden/locks/iface"
	redislock "github.com/imasker/warden/locks/redis"
	"github.com/imasker/warden/utils"
)

// Lock is the redis lock backed by a redigo connection pool
type Lock struct {
	pool    *redis.Pool
	redsync *redsync.Redsync
	options []redsync.Option
	prefix  string
}

var _ iface.Locker = (*Lock)(nil)

// New creates a pool for cnf.Lock, which may use the redigo:// or redis:// scheme.
// No connection is made until the first Acquire.
func New(cnf *config.Config) *Lock {
	url := cnf.Lock
	if strings.HasPrefix(url, "redigo://") {
		url = "redis://" + strings.TrimPrefix(url, "redigo://")
	}
	return NewWithPool(cnf, NewPool(url, cnf.Redis))
}

// NewWithPool builds a Lock around an existing pool
func NewWithPool(cnf *config.Config, pool *redis.Pool) *Lock {
	return &Lock{
		pool:    pool,
		redsync: redsync.New(redsyncredigo.NewPool(pool)),
		options: redislock.Options(cnf),
		prefix:  cnf.LockPrefix,
	}
}

// NewPool returns a redigo pool dialing url, tuned by cnf when it is non-nil
func NewPool(url string, cnf *config.RedisConfig) *redis.Pool {
	if cnf == nil {
		cnf = new(config.RedisConfig)
	}

	var opts []redis.DialOption
	if cnf.ConnectTimeout > 0 {
		opts = append(opts, redis.DialConnectTimeout(time.Duration(cnf.ConnectTimeout)*time.Second))
	}
	if cnf.ReadTimeout > 0 {
		opts = append(opts, redis.DialReadTimeout(time.Duration(cnf.ReadTimeout)*time.Second))
	}
	if cnf.WriteTimeout > 0 {
		opts = append(opts, redis.DialWriteTimeout(time.Duration(cnf.WriteTimeout)*time.Second))
	}

	return &redis.Pool{
		MaxIdle:     cnf.MaxIdle,
		MaxActive:   cnf.MaxActive,
		IdleTimeout: time.Duration(cnf.IdleTimeout) * time.Second,
		Wait:        cnf.Wait,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(url, opts...)
		},
		// PINGs connections that have been idle more than 10 seconds
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < 10*time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

func (l *Lock) Name() string {
	return "redigo"
}

func (l *Lock) Acquire(ctx context.Context, key string) (iface.Unlock, error) {
	return redislock.Acquire(ctx, l.redsync, utils.GetLockName(l.prefix, key), l.options...)
}

// Close closes the pool
func (l *Lock) Close() error {
	return l.pool.Close()
}
