package visited

import (
	"fmt"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

type StoreErrorCause string

const (
	ErrCauseLogWriteFailure StoreErrorCause = "durable log write failure"
	ErrCauseLogLoadFailure  StoreErrorCause = "durable log load failure"
)

// StoreError reports a failure persisting or loading the durable visited
// log. Claim itself always succeeds in memory even if durability fails; a
// StoreError is surfaced to the caller for observability but does not
// un-claim the URL (per the Visited Store contract: a claimed URL never
// reverts).
type StoreError struct {
	Message   string
	Retryable bool
	Cause     StoreErrorCause
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("visited store error: %s, %s", e.Cause, e.Message)
}

func (e *StoreError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *StoreError) IsRetryable() bool {
	return e.Retryable
}
