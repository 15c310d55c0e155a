// Package noop provides the lock manager used when no coordination backend is configured.
//
// It does no distributed locking at all. Every Acquire, whatever its key and
// whichever Lock value it is called on, enters the same process-wide critical
// section, so operations on unrelated keys serialize against each other.
// Use keyed.Lock when keys must not contend.
package noop

import (
	"context"
	"sync"

	"github.com/imasker/warden/locks/iface"
)

// global is shared by every Lock in the process
var global sync.Mutex

// Lock ignores the key and the context. The section is not re-entrant:
// acquiring again from inside a held section deadlocks.
type Lock struct{}

var _ iface.Locker = Lock{}

func New() Lock {
	return Lock{}
}

func (Lock) Name() string {
	return "noop"
}

func (Lock) Acquire(_ context.Context, _ string) (iface.Unlock, error) {
	global.Lock()

	var once sync.Once
	return func() error {
		once.Do(global.Unlock)
		return nil
	}, nil
}
