/*
Responsibilities
- Own the crawl lifecycle: seeding, batch dispatch, termination
- Bound worker concurrency to concurrent_requests
- Apply the global inter-batch politeness delay
- Guarantee final crawl_stats.json emission on every exit path

Replaces the teacher's single-threaded internal/scheduler/scheduler.go
ExecuteCrawling loop with a bounded worker pool: golang.org/x/sync/semaphore.Weighted
sized to concurrent_requests gates how many URLs are in flight at once,
golang.org/x/time/rate paces the global inter-batch sleep, and the
teacher's guaranteed final-stats recording survives as this Scheduler's
finish step: every return of Run goes through finish, which records the
final counters (proxy stats included) and then writes crawl_stats.json. Pulling
a batch and waiting for it to fully resolve before looping is the
teacher's "sole authority on retry, continue, abort" pattern generalized
to many workers instead of one.
*/
package scheduler

import (
	"context"
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/rohmanhakim/sitecrawler/internal/classify"
	"github.com/rohmanhakim/sitecrawler/internal/config"
	"github.com/rohmanhakim/sitecrawler/internal/contenthash"
	htmlextract "github.com/rohmanhakim/sitecrawler/internal/extract/html"
	pdfextract "github.com/rohmanhakim/sitecrawler/internal/extract/pdf"
	"github.com/rohmanhakim/sitecrawler/internal/fetcher"
	"github.com/rohmanhakim/sitecrawler/internal/frontier"
	"github.com/rohmanhakim/sitecrawler/internal/metadata"
	"github.com/rohmanhakim/sitecrawler/internal/persist"
	"github.com/rohmanhakim/sitecrawler/internal/proxy"
	"github.com/rohmanhakim/sitecrawler/internal/sitemap"
	"github.com/rohmanhakim/sitecrawler/internal/stats"
	"github.com/rohmanhakim/sitecrawler/internal/urlnorm"
	"github.com/rohmanhakim/sitecrawler/internal/visited"
	"github.com/rohmanhakim/sitecrawler/pkg/failure"
	"github.com/rohmanhakim/sitecrawler/pkg/fileutil"
	"github.com/rohmanhakim/sitecrawler/pkg/retry"
	"github.com/rohmanhakim/sitecrawler/pkg/urlutil"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Scheduler is component J: the sole control-plane authority of the
// crawl. No other component decides whether a URL enters the frontier,
// when a batch dispatches, or when the run terminates.
type Scheduler struct {
	cfg        config.Config
	outputRoot string

	normalizer   *urlnorm.Normalizer
	visitedStore *visited.Store
	contentHashes *contenthash.Set
	classifierFn func(path string) classify.Action
	htmlExtractor *htmlextract.Extractor
	pdfExtractor  *pdfextract.Extractor
	fetcher       fetcher.Fetcher
	persister     *persist.Persister
	frontier      *frontier.Frontier
	sitemapLoader *sitemap.Loader
	recorder      *stats.Recorder
	rotator       *proxy.Rotator

	retryParam retry.RetryParam
	sem        *semaphore.Weighted
	pacer      *rate.Limiter
}

// New wires every component for one crawl run, rooted at
// cfg.OutputDir()/<domain> per §6's crawled_data/<domain>/ layout.
func New(cfg config.Config) (*Scheduler, failure.ClassifiedError) {
	recorder := stats.NewRecorder()
	outputRoot := filepath.Join(cfg.OutputDir(), cfg.BaseURL().Host)

	rotator, proxyErr := proxy.LoadFromFile(cfg.ProxyFile())
	if proxyErr != nil {
		recorder.RecordError(time.Now(), "scheduler", "New", metadata.CauseUnknown, proxyErr.Error(), nil)
	}

	if dirErr := fileutil.EnsureDir(outputRoot); dirErr != nil {
		return nil, dirErr
	}

	visitedStore, storeErr := visited.NewStore(filepath.Join(outputRoot, "visited.jsonl"))
	if storeErr != nil {
		return nil, storeErr
	}

	var maxDepth *int
	if depth, ok := cfg.MaxDepth(); ok {
		maxDepth = &depth
	}

	httpFetcher := fetcher.NewHTTPFetcher(rotator, recorder, cfg.UserAgent(), cfg.Timeout())
	normalizer := urlnorm.NewNormalizer(cfg.BaseURL().Hostname())

	s := &Scheduler{
		cfg:           cfg,
		outputRoot:    outputRoot,
		normalizer:    normalizer,
		visitedStore:  visitedStore,
		contentHashes: contenthash.NewSet(),
		classifierFn:  classify.Classify,
		htmlExtractor: htmlextract.NewExtractor(normalizer),
		pdfExtractor:  pdfextract.DefaultExtractor(),
		fetcher:       httpFetcher,
		persister:     persist.NewPersister(outputRoot, recorder),
		frontier:      frontier.New(maxDepth),
		sitemapLoader: sitemap.NewLoader(&http.Client{Timeout: cfg.Timeout()}, cfg.UserAgent(), recorder),
		recorder:      recorder,
		rotator:       rotator,
		retryParam:    retry.NewRetryParam(cfg.RequestDelay(), cfg.MaxRetries()),
		sem:           semaphore.NewWeighted(int64(cfg.Concurrency())),
		pacer:         rate.NewLimiter(rate.Every(cfg.RequestDelay()), 1),
	}
	return s, nil
}

// Run seeds the frontier with base_url and any sitemap-discovered URLs,
// then drives the main loop of §4.8 until the queue is exhausted or
// max_pages is reached, emitting crawl_stats.json on every exit path.
func (s *Scheduler) Run(ctx context.Context) (stats.Summary, failure.ClassifiedError) {
	s.seed(ctx)

	for {
		if s.frontier.IsEmpty() {
			break
		}
		if s.frontier.ClaimedCount() >= s.cfg.MaxPages() {
			break
		}

		remaining := s.cfg.MaxPages() - s.frontier.ClaimedCount()
		batchWidth := s.cfg.Concurrency()
		if remaining < batchWidth {
			batchWidth = remaining
		}

		batch := s.frontier.PopBatch(batchWidth)
		if len(batch) == 0 {
			break
		}

		var wg sync.WaitGroup
		for _, entry := range batch {
			if err := s.sem.Acquire(ctx, 1); err != nil {
				wg.Wait()
				return s.finish()
			}
			wg.Add(1)
			go func(e frontier.Entry) {
				defer wg.Done()
				defer s.sem.Release(1)
				s.processEntry(ctx, e)
			}(entry)
		}
		wg.Wait()

		if ctx.Err() != nil {
			return s.finish()
		}
		if err := s.pacer.Wait(ctx); err != nil {
			break
		}
	}

	return s.finish()
}

func (s *Scheduler) finish() (stats.Summary, failure.ClassifiedError) {
	s.recorder.SetProxyStats(s.rotator.Stats())
	s.recorder.RecordFinalCrawlStats()
	summaryPath := filepath.Join(s.outputRoot, "crawl_stats.json")
	if err := s.recorder.WriteSummary(summaryPath); err != nil {
		return s.recorder.Snapshot(), err
	}
	return s.recorder.Snapshot(), nil
}

// seed pushes (base_url, 0) and whatever additional seeds the Sitemap
// Loader harvests from robots.txt, per §4.8's seeding rule.
func (s *Scheduler) seed(ctx context.Context) {
	base := s.cfg.BaseURL()
	seedCanonical := urlnorm.NewCanonical(urlutil.Canonicalize(base))
	s.frontier.Push(frontier.NewEntry(seedCanonical, 0))

	if s.cfg.MaxPages() == 0 {
		return
	}

	for _, rawURL := range s.sitemapLoader.Discover(ctx, base) {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			continue
		}
		canonical, rejectErr := s.normalizer.Normalize(parsed.String(), base)
		if rejectErr != nil {
			continue
		}
		s.frontier.Push(frontier.NewEntry(canonical, 0))
	}
}
