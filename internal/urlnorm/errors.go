package urlnorm

import (
	"fmt"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

type NormalizeErrorCause string

const (
	ErrCauseUnresolvable   NormalizeErrorCause = "link could not be resolved against referrer"
	ErrCauseCrossDomain    NormalizeErrorCause = "cross-domain link"
	ErrCauseExcludedPath   NormalizeErrorCause = "excluded path pattern"
	ErrCauseFragmentOnly   NormalizeErrorCause = "fragment-only reference"
	ErrCauseExcludedSuffix NormalizeErrorCause = "excluded suffix"
)

// NormalizeError reports a link A rejected. Rejection is never retryable:
// it is a policy decision about the link itself, not a transient condition.
type NormalizeError struct {
	Message string
	Cause   NormalizeErrorCause
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("normalize error: %s, %s", e.Cause, e.Message)
}

func (e *NormalizeError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *NormalizeError) IsRetryable() bool {
	return false
}
