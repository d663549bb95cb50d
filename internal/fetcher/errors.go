package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/sitecrawler/internal/metadata"
	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseTimeout               FetchErrorCause = "timeout"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseRequestNotFound       FetchErrorCause = "404 not found"
	ErrCauseRequest4xx            FetchErrorCause = "4xx client error"
	ErrCauseRequest5xx            FetchErrorCause = "5xx server error"
)

// FetchError reports a failed fetch attempt. Retryable mirrors §4.4's rule:
// transport error, timeout, any 5xx, or any 4xx other than 404 are
// retryable; 404 is terminal on first occurrence.
type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause is observational only; it must never be used
// to derive control-flow decisions (see internal/metadata doc comment).
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout, ErrCauseNetworkFailure, ErrCauseRequest5xx:
		return metadata.CauseNetworkFailure
	case ErrCauseRequestNotFound, ErrCauseRequest4xx:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
