/*
Responsibilities
- Resolve a raw (possibly relative) link against its referring URL
- Produce the canonical form used as the identity key throughout the crawler
- Reject cross-domain links and links matching the excluded-pattern set

The same-domain invariant is enforced here once, so no downstream component
needs to re-check it.
*/
package urlnorm

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rohmanhakim/sitecrawler/pkg/urlutil"
)

// defaultExcludedPathPattern matches login/auth-adjacent paths, case
// insensitively, per the spec's default excluded set.
var defaultExcludedPathPattern = regexp.MustCompile(`(?i)(login|logout|signin|signout|auth)`)

// excludedSuffixes are path suffixes rejected outright. Note: this exclusion
// does NOT apply to sitemap loading, which fetches sitemap XML directly
// without going through the Normalizer.
var excludedSuffixes = map[string]bool{
	".css":  true,
	".js":   true,
	".json": true,
	".xml":  true,
}

// Normalizer implements component A: it resolves a link against its
// referrer, canonicalizes it, and enforces the same-domain and
// excluded-pattern invariants.
type Normalizer struct {
	// allowedHost is the configured crawl domain; links resolving to any
	// other host are rejected.
	allowedHost string

	// excludedPathPattern overrides the default excluded pattern, if set.
	excludedPathPattern *regexp.Regexp
}

func NewNormalizer(allowedHost string) *Normalizer {
	return &Normalizer{
		allowedHost:         strings.ToLower(allowedHost),
		excludedPathPattern: defaultExcludedPathPattern,
	}
}

// WithExcludedPathPattern overrides the default excluded-pattern regexp.
func (n *Normalizer) WithExcludedPathPattern(pattern *regexp.Regexp) *Normalizer {
	n.excludedPathPattern = pattern
	return n
}

// Normalize resolves rawLink against referrer, canonicalizes the result, and
// validates it against the same-domain and excluded-pattern rules. It
// returns the rejection cause via *NormalizeError when the link is not
// admissible; callers must treat a non-nil error as "rejected", not as a
// transient failure.
func (n *Normalizer) Normalize(rawLink string, referrer url.URL) (Canonical, *NormalizeError) {
	trimmed := strings.TrimSpace(rawLink)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Canonical{}, &NormalizeError{
			Message: "empty or fragment-only link",
			Cause:   ErrCauseFragmentOnly,
		}
	}

	resolved, err := referrer.Parse(trimmed)
	if err != nil {
		return Canonical{}, &NormalizeError{
			Message: err.Error(),
			Cause:   ErrCauseUnresolvable,
		}
	}

	canonical := urlutil.Canonicalize(*resolved)

	if !strings.EqualFold(canonical.Hostname(), n.allowedHost) {
		return Canonical{}, &NormalizeError{
			Message: "host " + canonical.Hostname() + " does not match configured domain " + n.allowedHost,
			Cause:   ErrCauseCrossDomain,
		}
	}

	if n.excludedPathPattern != nil && n.excludedPathPattern.MatchString(canonical.Path) {
		return Canonical{}, &NormalizeError{
			Message: "path matches excluded pattern: " + canonical.Path,
			Cause:   ErrCauseExcludedPath,
		}
	}

	if suffix := suffixOf(canonical.Path); suffix != "" && excludedSuffixes["."+suffix] {
		return Canonical{}, &NormalizeError{
			Message: "path has excluded suffix: " + canonical.Path,
			Cause:   ErrCauseExcludedSuffix,
		}
	}

	return NewCanonical(canonical), nil
}

func suffixOf(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx == -1 || idx == len(path)-1 {
		return ""
	}
	if strings.Contains(path[idx:], "/") {
		return ""
	}
	return path[idx+1:]
}
