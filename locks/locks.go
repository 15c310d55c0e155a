// Package locks runs operations under a named lock.
//
// The backends live in the sub-packages: noop holds one process-wide section
// and ignores the key, keyed isolates keys within a process, and redis,
// redigo and file coordinate across processes.
package locks

import (
	"context"
	"errors"
	"fmt"

	"github.com/imasker/warden/locks/iface"
	"github.com/imasker/warden/log"
	"github.com/imasker/warden/tracing"
)

// ErrUnlockFailed is returned when op succeeded but the lock could not be released cleanly,
// typically because a distributed lease expired while op was running
var ErrUnlockFailed = errors.New("locks: failed to release lock")

// Do runs op while holding the lock named key and returns exactly what op returns.
// An error from op is returned unchanged. The lock is released on every path, panics included.
func Do[T any](l iface.Locker, key string, op func() (T, error)) (T, error) {
	return DoContext(context.Background(), l, key, func(context.Context) (T, error) {
		return op()
	})
}

// DoContext is Do with a context that bounds lock acquisition and is handed to op
func DoContext[T any](ctx context.Context, l iface.Locker, key string, op func(ctx context.Context) (T, error)) (result T, err error) {
	span, ctx := tracing.StartLockSpan(ctx, l.Name(), key)
	defer span.Finish()

	unlock, err := l.Acquire(ctx, key)
	if err != nil {
		tracing.LogError(span, err)
		return result, err
	}
	log.Logger.Debug("Acquired %s lock %s", l.Name(), key)

	defer func() {
		unlockErr := unlock()
		if unlockErr == nil {
			return
		}
		log.Logger.Error("Failed to release %s lock %s: %s", l.Name(), key, unlockErr)
		tracing.LogError(span, unlockErr)
		if err == nil {
			err = fmt.Errorf("%w: %w", ErrUnlockFailed, unlockErr)
		}
	}()

	result, err = op(ctx)
	tracing.LogError(span, err)
	return result, err
}
