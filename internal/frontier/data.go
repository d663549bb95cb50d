package frontier

import "github.com/rohmanhakim/sitecrawler/internal/urlnorm"

// Entry is a FrontierEntry (§3): a canonical URL paired with its BFS depth.
// Depth 0 is a seed.
type Entry struct {
	URL   urlnorm.Canonical
	Depth int
}

func NewEntry(u urlnorm.Canonical, depth int) Entry {
	return Entry{URL: u, Depth: depth}
}
