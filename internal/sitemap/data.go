package sitemap

// sitemapNamespace is the sitemap protocol 0.9 namespace. etree selectors
// below match the local tag name only, which is namespace-agnostic and
// tolerant of sitemaps that omit or alias the xmlns declaration.
const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
