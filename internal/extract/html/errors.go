package html

import (
	"fmt"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

type ExtractErrorCause string

const (
	ErrCauseUnparseable ExtractErrorCause = "document could not be parsed"
)

// ExtractError reports that a document could not be parsed as HTML at all.
// Per the spec's error taxonomy, this is never fatal to the crawl.
// Extractor.Extract does not return one: on a parse failure it falls back
// to treating the raw bytes as plain text.
type ExtractError struct {
	Message string
	Cause   ExtractErrorCause
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("html extract error: %s, %s", e.Cause, e.Message)
}

func (e *ExtractError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *ExtractError) IsRetryable() bool {
	return false
}
