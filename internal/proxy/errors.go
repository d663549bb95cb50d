package proxy

import (
	"fmt"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

type ProxyErrorCause string

const (
	ErrCauseFileUnreadable ProxyErrorCause = "proxy file unreadable"
)

// ProxyError reports a problem loading the proxy file. Load failures never
// abort startup; they fall back to a single direct entry (§4.5).
type ProxyError struct {
	Cause ProxyErrorCause
	Path  string
	Err   error
}

func (e *ProxyError) Error() string {
	return fmt.Sprintf("proxy error: %s (%s): %v", e.Cause, e.Path, e.Err)
}

func (e *ProxyError) Unwrap() error {
	return e.Err
}

func (e *ProxyError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *ProxyError) IsRetryable() bool {
	return false
}
