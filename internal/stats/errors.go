package stats

import (
	"fmt"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

// SummaryError reports a failure while marshaling crawl_stats.json. It is
// never retried: a fixed-shape struct either marshals or a prior change
// broke it.
type SummaryError struct {
	Message string
	Err     error
}

func (e *SummaryError) Error() string {
	return fmt.Sprintf("stats: %s: %v", e.Message, e.Err)
}

func (e *SummaryError) Unwrap() error {
	return e.Err
}

func (e *SummaryError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *SummaryError) IsRetryable() bool {
	return false
}
