/*
Responsibilities
- Hold an ordered ring of proxy entries and an advancing cursor
- Periodically re-rank the ring by health and latency
- Track usage statistics

Grounded on the teacher's pkg/limiter two-mutex discipline (one mutex for
shared timing/counter state, a second for anything touching the RNG or, here,
the health-probe target URL) and on the original ProxyManager
(original_source/Crawler-v02.py): ordered ring, advancing cursor, periodic
concurrent health refresh.
*/
package proxy

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	neturl "net/url"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultUpdateInterval = time.Hour
	probeTimeout          = 5 * time.Second
	defaultHealthURL      = "https://httpbin.org/ip"
)

// Rotator is the proxy ring (component E). It is safe for concurrent use by
// multiple fetcher workers.
type Rotator struct {
	mu             sync.Mutex
	probeMu        sync.Mutex
	entries        []Entry
	cursor         int
	lastRefresh    time.Time
	updateInterval time.Duration
	healthURL      string
	probeLimiter   *rate.Limiter
	stats          Stats
	httpClient     *http.Client
}

func New(entries []Entry) *Rotator {
	if len(entries) == 0 {
		entries = []Entry{directEntry()}
	}
	return &Rotator{
		entries:        entries,
		updateInterval: defaultUpdateInterval,
		healthURL:      defaultHealthURL,
		probeLimiter:   rate.NewLimiter(rate.Every(10*time.Millisecond), 4),
		httpClient:     &http.Client{Timeout: probeTimeout},
		lastRefresh:    time.Now(),
	}
}

// LoadFromFile loads proxies from a line-oriented text file of
// "ip:port:user:pass" entries (§4.5). Malformed lines are skipped; an
// absent or entirely-malformed file yields a single direct entry. The
// returned ProxyError, when non-nil, is informational: the Rotator it
// returns is always usable.
func LoadFromFile(path string) (*Rotator, error) {
	if path == "" {
		return New(nil), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return New(nil), &ProxyError{Cause: ErrCauseFileUnreadable, Path: path, Err: err}
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 4 {
			continue
		}
		ip, port, user, pass := parts[0], parts[1], parts[2], parts[3]
		addr := fmt.Sprintf("http://%s:%s@%s:%s", user, pass, ip, port)
		entries = append(entries, Entry{Addr: addr, Healthy: true})
	}

	return New(entries), nil
}

// SetUpdateInterval overrides the default 1-hour health-sweep cadence.
func (r *Rotator) SetUpdateInterval(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateInterval = d
}

// SetHealthURL overrides the default probe target, primarily for tests.
func (r *Rotator) SetHealthURL(url string) {
	r.probeMu.Lock()
	defer r.probeMu.Unlock()
	r.healthURL = url
}

// Acquire returns the next ring entry and advances the cursor. If the
// configured update interval has elapsed since the last health sweep, it
// runs Refresh first.
func (r *Rotator) Acquire(ctx context.Context) Entry {
	r.mu.Lock()
	due := time.Since(r.lastRefresh) > r.updateInterval
	r.mu.Unlock()

	if due {
		r.Refresh(ctx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.TotalUsed++
	entry := r.entries[r.cursor]
	r.cursor = (r.cursor + 1) % len(r.entries)
	r.stats.Rotations++
	return entry
}

// RecordResult updates the success/failure counters for the most recent
// acquisition. It never mutates ring membership; that is Refresh's job.
func (r *Rotator) RecordResult(success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if success {
		r.stats.SuccessfulRequests++
	} else {
		r.stats.FailedRequests++
	}
}

func (r *Rotator) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Refresh probes every entry concurrently, keeps only those answering 200
// within probeTimeout, and replaces the ring with the working set sorted
// ascending by measured latency. An empty working set falls back to a
// single direct entry (§4.5).
func (r *Rotator) Refresh(ctx context.Context) {
	r.mu.Lock()
	candidates := make([]Entry, len(r.entries))
	copy(candidates, r.entries)
	r.mu.Unlock()

	results := make([]Entry, len(candidates))
	ok := make([]bool, len(candidates))

	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate Entry) {
			defer wg.Done()

			if err := r.probeLimiter.Wait(ctx); err != nil {
				return
			}

			healthy, latency := r.probe(ctx, candidate)
			if healthy {
				candidate.Healthy = true
				candidate.Speed = latency
				results[i] = candidate
				ok[i] = true
			}
		}(i, candidate)
	}
	wg.Wait()

	var working []Entry
	for i, entry := range results {
		if ok[i] {
			working = append(working, entry)
		}
	}

	if len(working) == 0 {
		working = []Entry{directEntry()}
	} else {
		sortByLatency(working)
	}

	r.mu.Lock()
	r.entries = working
	r.cursor = 0
	r.lastRefresh = time.Now()
	r.mu.Unlock()
}

func (r *Rotator) probe(ctx context.Context, entry Entry) (bool, time.Duration) {
	if entry.Addr == "" {
		return true, 0
	}

	r.probeMu.Lock()
	healthURL := r.healthURL
	r.probeMu.Unlock()

	client := r.httpClient
	if entry.Addr != "" {
		proxyURL, parseErr := neturl.Parse(entry.Addr)
		if parseErr != nil {
			return false, 0
		}
		client = &http.Client{
			Timeout:   probeTimeout,
			Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
		}
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, healthURL, nil)
	if err != nil {
		return false, 0
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return false, 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, 0
	}

	return true, time.Since(start)
}

func sortByLatency(entries []Entry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Speed < entries[j-1].Speed; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}
