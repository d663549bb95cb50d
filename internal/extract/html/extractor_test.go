package html

import (
	"net/url"
	"testing"

	"github.com/rohmanhakim/sitecrawler/internal/urlnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referrer(t *testing.T, raw string) urlnorm.Canonical {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return urlnorm.NewCanonical(*u)
}

func TestExtract_VisibleTextAndTitle(t *testing.T) {
	e := NewExtractor(urlnorm.NewNormalizer("example.com"))
	body := []byte(`<html><head><title>T</title><style>.x{}</style></head><body>Hello   World</body></html>`)

	result := e.Extract(body, referrer(t, "https://example.com/"))
	assert.Equal(t, "T", result.Title)
	assert.True(t, result.HasTitle)
	assert.Equal(t, "T Hello World", result.Text)
}

func TestExtract_StripsScriptAndStyle(t *testing.T) {
	e := NewExtractor(urlnorm.NewNormalizer("example.com"))
	body := []byte(`<html><body><script>evil()</script><p>Visible</p><style>body{color:red}</style></body></html>`)

	result := e.Extract(body, referrer(t, "https://example.com/"))
	assert.Equal(t, "Visible", result.Text)
}

func TestExtract_SameHostLinksRetained(t *testing.T) {
	e := NewExtractor(urlnorm.NewNormalizer("example.com"))
	body := []byte(`<html><body><a href="/page">A</a><a href="https://other.example/">B</a></body></html>`)

	result := e.Extract(body, referrer(t, "https://example.com/"))
	require.Len(t, result.Links, 1)
	assert.Equal(t, "https://example.com/page", result.Links[0].String())
}

func TestExtract_DeduplicatesLinks(t *testing.T) {
	e := NewExtractor(urlnorm.NewNormalizer("example.com"))
	body := []byte(`<html><body><a href="/page">A</a><a href="/page">A again</a></body></html>`)

	result := e.Extract(body, referrer(t, "https://example.com/"))
	assert.Len(t, result.Links, 1)
}

func TestExtract_NoTitleYieldsEmpty(t *testing.T) {
	e := NewExtractor(urlnorm.NewNormalizer("example.com"))
	body := []byte(`<html><body><p>No title here</p></body></html>`)

	result := e.Extract(body, referrer(t, "https://example.com/"))
	assert.False(t, result.HasTitle)
	assert.Equal(t, "", result.Title)
}

func TestExtract_MalformedMarkupFallsBackToRawText(t *testing.T) {
	e := NewExtractor(urlnorm.NewNormalizer("example.com"))
	body := []byte("not html at all, just   text")

	result := e.Extract(body, referrer(t, "https://example.com/"))
	assert.Equal(t, "not html at all, just text", result.Text)
}
