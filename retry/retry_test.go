package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/imasker/warden/retry"
)

func TestFibonacci(t *testing.T) {
	t.Parallel()

	fibonacci := retry.Fibonacci()
	var got []int
	for i := 0; i < 8; i++ {
		got = append(got, fibonacci())
	}
	assert.Equal(t, []int{1, 1, 2, 3, 5, 8, 13, 21}, got)
}

func TestClosure(t *testing.T) {
	t.Parallel()

	wait := retry.Closure(time.Millisecond, 3*time.Millisecond)
	ctx := context.Background()

	assert.NoError(t, wait(ctx))
	for i := 0; i < 5; i++ {
		assert.NoError(t, wait(ctx))
	}
}

func TestClosure_Canceled(t *testing.T) {
	t.Parallel()

	wait := retry.Closure(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())

	assert.NoError(t, wait(ctx))
	cancel()
	assert.ErrorIs(t, wait(ctx), context.Canceled)
}
