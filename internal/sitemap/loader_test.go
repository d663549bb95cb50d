package sitemap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/sitecrawler/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSink struct {
	mu     sync.Mutex
	errors []string
}

func (s *capturingSink) RecordFetch(metadata.FetchEvent)       {}
func (s *capturingSink) RecordArtifact(metadata.ArtifactRecord) {}
func (s *capturingSink) RecordError(observedAt time.Time, pkg, action string, cause metadata.ErrorCause, errorString string, attrs []metadata.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, errorString)
}
func (s *capturingSink) RecordFinalCrawlStats() {}

const urlsetXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/page-1</loc></url>
  <url><loc>https://example.com/page-2</loc></url>
</urlset>`

const sitemapIndexXML = `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>%s</loc></sitemap>
</sitemapindex>`

func TestDiscover_HarvestsSitemapFromRobotsAndParsesURLSet(t *testing.T) {
	mux := http.NewServeMux()
	var robotsBody string
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(robotsBody))
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(urlsetXML))
	})
	s := httptest.NewServer(mux)
	defer s.Close()
	robotsBody = fmt.Sprintf("User-agent: *\nDisallow: /private\nSitemap: %s/sitemap.xml\n", s.URL)

	sink := &capturingSink{}
	loader := NewLoader(s.Client(), "sitecrawler-test/1.0", sink)

	base, err := url.Parse(s.URL)
	require.NoError(t, err)

	seeds := loader.Discover(context.Background(), *base)
	assert.ElementsMatch(t, []string{"https://example.com/page-1", "https://example.com/page-2"}, seeds)
}

func TestDiscover_RecursesIntoSitemapIndex(t *testing.T) {
	mux := http.NewServeMux()
	var childURL, robotsBody string

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(robotsBody))
	})
	mux.HandleFunc("/child.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(urlsetXML))
	})
	mux.HandleFunc("/index.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, sitemapIndexXML, childURL)
	})

	s := httptest.NewServer(mux)
	defer s.Close()
	childURL = s.URL + "/child.xml"
	robotsBody = fmt.Sprintf("Sitemap: %s/index.xml\n", s.URL)

	sink := &capturingSink{}
	loader := NewLoader(s.Client(), "sitecrawler-test/1.0", sink)
	base, err := url.Parse(s.URL)
	require.NoError(t, err)

	seeds := loader.Discover(context.Background(), *base)
	assert.ElementsMatch(t, []string{"https://example.com/page-1", "https://example.com/page-2"}, seeds)
}

func TestDiscover_MissingRobotsYieldsNoSeedsWithoutError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	s := httptest.NewServer(mux)
	defer s.Close()

	sink := &capturingSink{}
	loader := NewLoader(s.Client(), "sitecrawler-test/1.0", sink)
	base, err := url.Parse(s.URL)
	require.NoError(t, err)

	seeds := loader.Discover(context.Background(), *base)
	assert.Empty(t, seeds)
}

func TestDiscover_NonXMLContentTypeIsSkipped(t *testing.T) {
	mux := http.NewServeMux()
	var robotsBody string
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(robotsBody))
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("not xml"))
	})
	s := httptest.NewServer(mux)
	defer s.Close()
	robotsBody = fmt.Sprintf("Sitemap: %s/sitemap.xml\n", s.URL)

	sink := &capturingSink{}
	loader := NewLoader(s.Client(), "sitecrawler-test/1.0", sink)
	base, err := url.Parse(s.URL)
	require.NoError(t, err)

	seeds := loader.Discover(context.Background(), *base)
	assert.Empty(t, seeds)
	assert.NotEmpty(t, sink.errors)
}

func TestDiscover_MalformedXMLNeverPanicsAndYieldsNothing(t *testing.T) {
	mux := http.NewServeMux()
	var robotsBody string
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(robotsBody))
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte("<not-valid-xml"))
	})
	s := httptest.NewServer(mux)
	defer s.Close()
	robotsBody = fmt.Sprintf("Sitemap: %s/sitemap.xml\n", s.URL)

	sink := &capturingSink{}
	loader := NewLoader(s.Client(), "sitecrawler-test/1.0", sink)
	base, err := url.Parse(s.URL)
	require.NoError(t, err)

	seeds := loader.Discover(context.Background(), *base)
	assert.Empty(t, seeds)
}
