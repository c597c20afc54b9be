package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/pdfvector/internal/core/domain"
)

// Default retry parameters for transient I/O failures.
const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = 200 * time.Millisecond
)

// RetryPolicy is a bounded-attempt backoff strategy for transient I/O.
// A file that appears in the watched directory may still be mid-write;
// reads are retried with exponentially growing delays until MaxAttempts,
// then the last error is returned.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the second attempt; it doubles on
	// each subsequent attempt.
	BaseDelay time.Duration
}

// DefaultRetryPolicy returns the default policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, BaseDelay: DefaultBaseDelay}
}

// Do runs fn, retrying while it fails with a TransientIOError.
// Non-transient errors are returned immediately. Cancelling the context
// stops the wait between attempts.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		var transient *domain.TransientIOError
		if !errors.As(err, &transient) {
			return err
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
