package locks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imasker/warden/locks"
	"github.com/imasker/warden/locks/iface"
	"github.com/imasker/warden/locks/keyed"
	"github.com/imasker/warden/locks/noop"
)

type stubLocker struct {
	acquireErr error
	unlockErr  error
	held       bool
	released   int
}

func (s *stubLocker) Name() string {
	return "stub"
}

func (s *stubLocker) Acquire(_ context.Context, _ string) (iface.Unlock, error) {
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	s.held = true
	return func() error {
		s.held = false
		s.released++
		return s.unlockErr
	}, nil
}

func lockers() map[string]iface.Locker {
	return map[string]iface.Locker{
		"noop":  noop.New(),
		"keyed": keyed.New(),
	}
}

func TestDo_ReturnsResult(t *testing.T) {
	for name, l := range lockers() {
		l := l
		t.Run(name, func(t *testing.T) {
			s, err := locks.Do(l, "key", func() (string, error) {
				return "done", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "done", s)

			n, err := locks.Do(l, "key", func() (int, error) {
				return 42, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 42, n)

			p, err := locks.Do(l, "key", func() (*int, error) {
				return nil, nil
			})
			assert.NoError(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestDo_PropagatesErrorAndReleases(t *testing.T) {
	for name, l := range lockers() {
		l := l
		t.Run(name, func(t *testing.T) {
			boom := errors.New("boom")
			_, err := locks.Do(l, "key", func() (struct{}, error) {
				return struct{}{}, boom
			})
			assert.Same(t, boom, err)

			s, err := locks.Do(l, "other", func() (string, error) {
				return "still works", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "still works", s)
		})
	}
}

func TestDo_ReleasesOnPanic(t *testing.T) {
	for name, l := range lockers() {
		l := l
		t.Run(name, func(t *testing.T) {
			assert.Panics(t, func() {
				_, _ = locks.Do(l, "key", func() (int, error) {
					panic("kaboom")
				})
			})

			n, err := locks.Do(l, "key", func() (int, error) {
				return 1, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestDo_HoldsLockDuringOperation(t *testing.T) {
	stub := new(stubLocker)
	_, err := locks.Do(stub, "key", func() (bool, error) {
		assert.True(t, stub.held)
		return true, nil
	})
	assert.NoError(t, err)
	assert.False(t, stub.held)
	assert.Equal(t, 1, stub.released)
}

func TestDo_AcquireError(t *testing.T) {
	acquireErr := errors.New("unavailable")
	stub := &stubLocker{acquireErr: acquireErr}

	called := false
	n, err := locks.Do(stub, "key", func() (int, error) {
		called = true
		return 1, nil
	})
	assert.ErrorIs(t, err, acquireErr)
	assert.Zero(t, n)
	assert.False(t, called)
}

func TestDo_UnlockError(t *testing.T) {
	unlockErr := errors.New("lease expired")
	stub := &stubLocker{unlockErr: unlockErr}

	s, err := locks.Do(stub, "key", func() (string, error) {
		return "value", nil
	})
	assert.Equal(t, "value", s)
	assert.ErrorIs(t, err, locks.ErrUnlockFailed)
	assert.ErrorIs(t, err, unlockErr)

	// the operation's own error wins over a failed release
	opErr := errors.New("op failed")
	_, err = locks.Do(stub, "key", func() (string, error) {
		return "", opErr
	})
	assert.Same(t, opErr, err)
}

func TestDoContext_PassesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")

	got, err := locks.DoContext(ctx, keyed.New(), "key", func(ctx context.Context) (interface{}, error) {
		return ctx.Value(ctxKey{}), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
