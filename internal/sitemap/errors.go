package sitemap

import (
	"fmt"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

type SitemapErrorCause string

const (
	ErrCauseRobotsUnreachable SitemapErrorCause = "robots.txt unreachable"
	ErrCauseSitemapUnreachable SitemapErrorCause = "sitemap unreachable"
	ErrCauseSitemapNotXML     SitemapErrorCause = "sitemap content-type not xml"
	ErrCauseSitemapMalformed  SitemapErrorCause = "sitemap xml malformed"
)

// SitemapError is informational: per §4.9 a malformed or unreachable
// sitemap is logged and skipped, never treated as a crawl-aborting failure.
type SitemapError struct {
	Cause SitemapErrorCause
	URL   string
	Err   error
}

func (e *SitemapError) Error() string {
	return fmt.Sprintf("sitemap error: %s (%s): %v", e.Cause, e.URL, e.Err)
}

func (e *SitemapError) Unwrap() error {
	return e.Err
}

func (e *SitemapError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *SitemapError) IsRetryable() bool {
	return false
}
