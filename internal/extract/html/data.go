package html

import "github.com/rohmanhakim/sitecrawler/internal/urlnorm"

// Result is the output of extracting an HTML page: visible text, an
// optional title, and the set of same-host outbound links already resolved
// and normalized through component A.
type Result struct {
	Title     string
	HasTitle  bool
	Text      string
	Links     []urlnorm.Canonical
}
