package urlutil

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

func TestCanonicalize_LowercasesSchemeAndHost(t *testing.T) {
	got := Canonicalize(mustParse(t, "HTTPS://Example.COM/Path"))
	assert.Equal(t, "https", got.Scheme)
	assert.Equal(t, "example.com", got.Host)
}

func TestCanonicalize_StripsTrailingSlashExceptRoot(t *testing.T) {
	assert.Equal(t, "/a/b", Canonicalize(mustParse(t, "https://example.com/a/b/")).Path)
	assert.Equal(t, "/", Canonicalize(mustParse(t, "https://example.com/")).Path)
}

func TestCanonicalize_StripsFragment(t *testing.T) {
	got := Canonicalize(mustParse(t, "https://example.com/page#section"))
	assert.Equal(t, "", got.Fragment)
}

func TestCanonicalize_PreservesQuery(t *testing.T) {
	got := Canonicalize(mustParse(t, "https://example.com/page?id=1"))
	assert.Equal(t, "id=1", got.RawQuery)
}

func TestCanonicalize_StripsDefaultPort(t *testing.T) {
	assert.Equal(t, "example.com", Canonicalize(mustParse(t, "http://example.com:80/")).Host)
	assert.Equal(t, "example.com", Canonicalize(mustParse(t, "https://example.com:443/")).Host)
	assert.Equal(t, "example.com:8080", Canonicalize(mustParse(t, "http://example.com:8080/")).Host)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	u := mustParse(t, "HTTPS://Example.COM/Path/?q=1#frag")
	once := Canonicalize(u)
	twice := Canonicalize(once)
	assert.Equal(t, once.String(), twice.String())
}

func TestCanonicalize_EqualAcrossSpellings(t *testing.T) {
	a := Canonicalize(mustParse(t, "https://Example.com/foo/"))
	b := Canonicalize(mustParse(t, "HTTPS://example.com:443/foo"))
	assert.Equal(t, a.String(), b.String())
}
