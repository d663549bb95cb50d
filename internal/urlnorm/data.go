package urlnorm

import "net/url"

// Canonical wraps a normalized url.URL. Its String() form is the identity
// key used everywhere a URL is deduplicated (Visited Store, Content Hash
// Set keys are digests not URLs, but frontier/visited both key off this
// string). It is deliberately never used as a map key by value elsewhere in
// the codebase — only its String() form is, avoiding the pointer-field
// map-key pitfall that afflicts raw url.URL values (two structurally equal
// URLs can fail to compare equal as map keys once RawQuery/ForceQuery differ
// in representation but not meaning).
type Canonical struct {
	u url.URL
}

func NewCanonical(u url.URL) Canonical {
	return Canonical{u: u}
}

func (c Canonical) URL() url.URL {
	return c.u
}

func (c Canonical) String() string {
	return c.u.String()
}

func (c Canonical) Host() string {
	return c.u.Hostname()
}
