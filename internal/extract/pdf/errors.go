package pdf

import (
	"fmt"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

type ExtractErrorCause string

const (
	ErrCauseAllBackendsEmpty ExtractErrorCause = "all backends yielded empty text"
)

// ExtractError reports that every configured backend produced empty text.
// Per the spec's error taxonomy this is recorded as a pdf_failed count; the
// downloaded bytes are kept and no _pdf.txt artifact is emitted.
type ExtractError struct {
	Message string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("pdf extract error: %s, %s", ErrCauseAllBackendsEmpty, e.Message)
}

func (e *ExtractError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *ExtractError) IsRetryable() bool {
	return false
}
