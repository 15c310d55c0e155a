// Package file locks keys across processes on one host with advisory lock files.
package file

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/imasker/warden/config"
	"github.com/imasker/warden/locks/iface"
	"github.com/imasker/warden/log"
	"github.com/imasker/warden/retry"
	"github.com/imasker/warden/utils"
)

var ErrFileLockFailed = errors.New("file lock: failed to acquire lock")

// Lock keeps one <prefix><key>.lock file per key under dir.
// Lock files are left in place after release.
type Lock struct {
	dir    string
	prefix string
	tries  int
	delay  time.Duration
}

var _ iface.Locker = (*Lock)(nil)

// New creates the directory named by a file:// URL in cnf.Lock
func New(cnf *config.Config) (*Lock, error) {
	u, err := url.Parse(cnf.Lock)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "file" {
		return nil, fmt.Errorf("file lock: unsupported url %s", cnf.Lock)
	}
	dir := u.Path
	if dir == "" {
		dir = u.Host
	}
	if dir == "" {
		return nil, fmt.Errorf("file lock: missing directory in %s", cnf.Lock)
	}
	return NewInDir(cnf, dir)
}

// NewInDir creates dir if needed and locks keys beneath it
func NewInDir(cnf *config.Config, dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	delay := cnf.RetryDelay()
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return &Lock{
		dir:    dir,
		prefix: cnf.LockPrefix,
		tries:  cnf.LockTries,
		delay:  delay,
	}, nil
}

func (l *Lock) Name() string {
	return "file"
}

// Path returns the lock file used for key
func (l *Lock) Path(key string) string {
	name := url.PathEscape(utils.GetLockName(l.prefix, key))
	// PathEscape leaves dots alone; keep "." and ".." from naming directories
	name = strings.ReplaceAll(name, ".", "%2E")
	return filepath.Join(l.dir, name+".lock")
}

// Acquire polls the lock file with a Fibonacci backoff capped at eight retry delays.
// It gives up after LockTries attempts, or never when LockTries is zero or less.
func (l *Lock) Acquire(ctx context.Context, key string) (iface.Unlock, error) {
	fl := flock.New(l.Path(key))
	wait := retry.Closure(l.delay, 8*l.delay)

	for attempt := 1; ; attempt++ {
		if err := wait(ctx); err != nil {
			return nil, err
		}

		locked, err := fl.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			break
		}

		if l.tries > 0 && attempt >= l.tries {
			log.Logger.Warn("Gave up on lock file %s after %d attempts", fl.Path(), attempt)
			return nil, ErrFileLockFailed
		}
	}

	var once sync.Once
	return func() (err error) {
		once.Do(func() {
			err = fl.Unlock()
		})
		return err
	}, nil
}
