package cache

import (
	"context"
	"errors"
	"time"
)

// transientError flags a failure that may succeed on another attempt.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying. Transient(nil) is nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

// IsTransient reports whether any error in err's chain was marked by Transient.
func IsTransient(err error) bool {
	var te transientError
	return errors.As(err, &te)
}

// backoff retries transient failures, doubling the pause between attempts.
type backoff struct {
	attempts int
	first    time.Duration
}

// redisBackoff governs connection and write attempts against Redis.
var redisBackoff = backoff{attempts: 3, first: 200 * time.Millisecond}

// do calls fn until it succeeds, returns a permanent error, runs out of
// attempts or ctx ends. The last error from fn is returned on exhaustion.
func (b backoff) do(ctx context.Context, fn func() error) error {
	pause := b.first
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsTransient(err) || attempt >= b.attempts {
			return err
		}
		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		pause *= 2
	}
}
