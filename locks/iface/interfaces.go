package iface

import "context"

// Unlock releases a held lock. Calling it more than once is a no-op.
type Unlock func() error

// Locker is implemented by every lock backend
type Locker interface {
	// Acquire blocks until the lock named key is held and returns the function that releases it.
	// Backends that can wait on ctx give up with ctx.Err() once it is done.
	Acquire(ctx context.Context, key string) (Unlock, error)

	// Name identifies the backend in logs and traces
	Name() string
}
