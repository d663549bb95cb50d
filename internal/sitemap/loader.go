/*
Responsibilities
- Harvest Sitemap: directives from robots.txt
- Fetch and parse each referenced sitemap, recursing into sitemap indexes
- Yield every <loc> as a candidate seed URL

This never enforces robots.txt disallow rules (Non-goals, §1): the
temoto/robotstxt parse is used exclusively for its public Sitemaps field.
XML parsing follows the beevik/etree usage pattern from the pack's
locdoc sitemap service, generalized from its single-pass robots.txt line
scan to the Sitemaps-field approach and from a return-on-first-error
contract to "log and skip" (§4.9: a malformed sitemap never aborts the
crawl).
*/
package sitemap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rohmanhakim/sitecrawler/internal/metadata"
	"github.com/temoto/robotstxt"
)

type Loader struct {
	httpClient   *http.Client
	userAgent    string
	metadataSink metadata.MetadataSink
}

func NewLoader(httpClient *http.Client, userAgent string, metadataSink metadata.MetadataSink) *Loader {
	return &Loader{httpClient: httpClient, userAgent: userAgent, metadataSink: metadataSink}
}

// Discover fetches robots.txt under base, harvests its Sitemap: directives,
// and returns every <loc> found across those sitemaps (recursing through
// sitemap indexes). It never returns an error: any failure along the way
// is recorded through the metadata sink and otherwise skipped, yielding
// whatever seeds were successfully collected.
func (l *Loader) Discover(ctx context.Context, base url.URL) []string {
	robotsURL := base
	robotsURL.Path = "/robots.txt"
	robotsURL.RawQuery = ""

	body, err := l.fetch(ctx, robotsURL.String())
	if err != nil {
		l.recordError(&SitemapError{Cause: ErrCauseRobotsUnreachable, URL: robotsURL.String(), Err: err})
		return nil
	}

	robotsData, err := robotstxt.FromBytes(body)
	if err != nil {
		l.recordError(&SitemapError{Cause: ErrCauseSitemapMalformed, URL: robotsURL.String(), Err: err})
		return nil
	}

	seen := make(map[string]bool)
	var seeds []string
	for _, sitemapURL := range robotsData.Sitemaps {
		seeds = append(seeds, l.processSitemap(ctx, sitemapURL, seen)...)
	}
	return seeds
}

func (l *Loader) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) []string {
	if seen[sitemapURL] {
		return nil
	}
	seen[sitemapURL] = true

	contentType, body, err := l.fetchWithContentType(ctx, sitemapURL)
	if err != nil {
		l.recordError(&SitemapError{Cause: ErrCauseSitemapUnreachable, URL: sitemapURL, Err: err})
		return nil
	}
	if !strings.Contains(strings.ToLower(contentType), "xml") {
		l.recordError(&SitemapError{Cause: ErrCauseSitemapNotXML, URL: sitemapURL, Err: fmt.Errorf("content-type %q", contentType)})
		return nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		l.recordError(&SitemapError{Cause: ErrCauseSitemapMalformed, URL: sitemapURL, Err: err})
		return nil
	}

	root := doc.Root()
	if root == nil {
		l.recordError(&SitemapError{Cause: ErrCauseSitemapMalformed, URL: sitemapURL, Err: fmt.Errorf("empty document")})
		return nil
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, sitemapEl := range root.SelectElements("sitemap") {
			loc := sitemapEl.SelectElement("loc")
			if loc == nil {
				continue
			}
			nested := strings.TrimSpace(loc.Text())
			if nested == "" {
				continue
			}
			urls = append(urls, l.processSitemap(ctx, nested, seen)...)
		}
		return urls
	}

	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (l *Loader) fetch(ctx context.Context, target string) ([]byte, error) {
	_, body, err := l.fetchWithContentType(ctx, target)
	return body, err
}

func (l *Loader) fetchWithContentType(ctx context.Context, target string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	return resp.Header.Get("Content-Type"), body, nil
}

func (l *Loader) recordError(err *SitemapError) {
	l.metadataSink.RecordError(
		time.Now(),
		"sitemap",
		"Loader.Discover",
		metadata.CauseContentInvalid,
		err.Error(),
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, err.URL)},
	)
}
