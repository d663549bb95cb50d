package fetcher

import (
	"context"
	"io"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
	"github.com/rohmanhakim/sitecrawler/pkg/retry"
)

// Fetcher is the HTTP boundary (component D). Fetch buffers the full body
// (used for HTML, where the digest and DOM parse both need the whole
// response in memory); FetchStream copies the body in bounded chunks
// without buffering it, for file downloads. newWriter is called once per
// attempt (not once per Fetch call) so a retried request starts its
// destination file from scratch rather than appending to a partial write.
type Fetcher interface {
	Fetch(ctx context.Context, target Target, retryParam retry.RetryParam) (Result, failure.ClassifiedError)
	FetchStream(ctx context.Context, target Target, retryParam retry.RetryParam, newWriter func() (io.WriteCloser, error)) (Result, failure.ClassifiedError)
}
