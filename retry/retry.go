package retry

import (
	"context"
	"time"

	"github.com/imasker/warden/log"
)

// Closure returns a wait function that spaces out attempts using the Fibonacci
// sequence scaled by base, never waiting longer than max. The first call
// returns immediately. Each call blocks until the delay passes or ctx is done,
// in which case ctx.Err() is returned.
func Closure(base, max time.Duration) func(ctx context.Context) error {
	var retryIn time.Duration
	fibonacci := Fibonacci()
	return func(ctx context.Context) error {
		if retryIn > 0 {
			log.Logger.Debug("Retrying in %s", retryIn)

			timer := time.NewTimer(retryIn)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		retryIn = time.Duration(fibonacci()) * base
		if max > 0 && retryIn > max {
			retryIn = max
		}
		return nil
	}
}
