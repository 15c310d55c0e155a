// Package keyed is an in-process lock with one exclusion section per key.
package keyed

import (
	"context"
	"sync"

	"github.com/imasker/warden/locks/iface"
)

type entry struct {
	// sem holds a token while the key is locked
	sem chan struct{}
	// refs counts holders and waiters; the entry is dropped when it reaches zero
	refs int
}

// Lock creates sections lazily and forgets them once nobody holds or waits on them.
// The zero value is ready to use.
type Lock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

var _ iface.Locker = (*Lock)(nil)

func New() *Lock {
	return &Lock{entries: make(map[string]*entry)}
}

func (l *Lock) Name() string {
	return "local"
}

// Acquire waits for key's section, giving up with ctx.Err() when ctx is done first
func (l *Lock) Acquire(ctx context.Context, key string) (iface.Unlock, error) {
	e := l.ref(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() error {
		once.Do(func() {
			<-e.sem
			l.unref(key, e)
		})
		return nil
	}, nil
}

// Len reports how many keys currently have a section
func (l *Lock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Lock) ref(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.entries == nil {
		l.entries = make(map[string]*entry)
	}
	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Lock) unref(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
