package retry

import (
	"fmt"
	"time"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
	"github.com/rohmanhakim/sitecrawler/pkg/timeutil"
)

// Retry executes fn up to retryParam.MaxAttempts times. Between attempts it
// sleeps BaseDelay*attempt (linear backoff) via sleeper. Only errors that
// report IsRetryable()==true trigger another attempt; anything else returns
// immediately.
//
// Type parameter T represents the return type of the function being retried.
func Retry[T any](retryParam RetryParam, sleeper timeutil.Sleeper, fn func() (T, failure.ClassifiedError)) Result[T] {
	var lastErr failure.ClassifiedError
	var zero T

	if retryParam.MaxAttempts < 1 {
		return Result[T]{
			value: zero,
			err: &RetryError{
				Message:   "max attempt cannot be 0",
				Cause:     ErrZeroAttempt,
				Retryable: true,
			},
			attempts: 0,
		}
	}

	for attempt := 1; attempt <= retryParam.MaxAttempts; attempt++ {
		result, err := fn()

		if err == nil {
			return NewSuccessResult(result, attempt)
		}

		lastErr = err

		if !isErrorRetryable(err) {
			return Result[T]{
				value:    zero,
				err:      err,
				attempts: attempt,
			}
		}

		if attempt == retryParam.MaxAttempts {
			break
		}

		sleeper.Sleep(retryParam.BaseDelay * time.Duration(attempt))
	}

	return Result[T]{
		value: zero,
		err: &RetryError{
			Message:   fmt.Sprintf("exhausted %d attempts. Last error: %v", retryParam.MaxAttempts, lastErr),
			Cause:     ErrExhaustedAttempts,
			Retryable: false,
		},
		attempts: retryParam.MaxAttempts,
	}
}

// isErrorRetryable checks if an error should be retried by duck-typing for
// an IsRetryable() bool method. Errors that don't implement it are treated
// as non-retryable, matching the spec's "404 is terminal" default.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}

	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}

	return false
}
