package scheduler

import (
	"fmt"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

// SchedulerError reports a failure in the crawl's control plane itself
// (as opposed to a per-URL failure, which is counted and the crawl
// continues). New and Run do not construct one: an unreadable proxy file
// is recorded through the metadata sink and the crawl continues, and a
// failed crawl_stats.json write is returned as the stats or fileutil error.
type SchedulerError struct {
	Message string
	Err     error
}

func (e *SchedulerError) Error() string {
	return fmt.Sprintf("scheduler: %s: %v", e.Message, e.Err)
}

func (e *SchedulerError) Unwrap() error {
	return e.Err
}

func (e *SchedulerError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *SchedulerError) IsRetryable() bool {
	return false
}
