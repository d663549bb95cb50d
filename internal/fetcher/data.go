package fetcher

import (
	"net/url"
	"time"
)

// Target is one fetch request: the URL to retrieve and its BFS depth, kept
// alongside the request purely so it can be threaded into metadata events.
type Target struct {
	URL        url.URL
	CrawlDepth int
}

func NewTarget(u url.URL, crawlDepth int) Target {
	return Target{URL: u, CrawlDepth: crawlDepth}
}

// Result is the ResponseEnvelope of §3: the final URL after redirects,
// status, headers, content type, and either a buffered body (HTML) or a
// byte count (streamed file download).
type Result struct {
	FinalURL    url.URL
	StatusCode  int
	Headers     map[string]string
	ContentType string
	Body        []byte
	BytesWritten uint64
	FetchedAt   time.Time
	Duration    time.Duration
}
