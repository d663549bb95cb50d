/*
Responsibilities
- Strip script/style/meta/link/noscript subtrees from a parsed HTML document
- Concatenate the remaining visible text, collapsing whitespace runs
- Return the <title> text if present
- Harvest outbound href values, resolved and normalized through component A,
  keeping only same-host links

This is a flatter contract than the teacher's documentation-extraction
heuristics (internal/extractor/dom.go, internal/sanitizer/html.go): the spec
calls for "visible text", not "the single best content container", so no
semantic-container scoring survives here. Malformed markup falls back to
"all text of the document" per the spec's error taxonomy, never an error
that aborts the crawl.
*/
package html

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/sitecrawler/internal/urlnorm"
	xhtml "golang.org/x/net/html"
)

// strippedSelectors lists the subtrees removed before text extraction, per
// spec §4.6(G)(a).
const strippedSelectors = "script, style, meta, link, noscript"

// Extractor implements component G: the HTML Extractor.
type Extractor struct {
	normalizer *urlnorm.Normalizer
}

func NewExtractor(normalizer *urlnorm.Normalizer) *Extractor {
	return &Extractor{normalizer: normalizer}
}

// Extract parses body as HTML relative to referrer and returns its visible
// text, title, and same-host outbound links. A parse failure falls back to
// treating the raw bytes as plain text (no links, no title) rather than
// erroring the caller out of the pipeline.
func (e *Extractor) Extract(body []byte, referrer urlnorm.Canonical) Result {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Result{Text: collapseWhitespace(string(body))}
	}

	doc.Find(strippedSelectors).Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())

	var textParts []string
	var collectText func(*xhtml.Node)
	collectText = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			textParts = append(textParts, n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collectText(child)
		}
	}
	for _, node := range doc.Nodes {
		collectText(node)
	}
	text := collapseWhitespace(strings.Join(textParts, " "))

	referrerURL := referrer.URL()
	var links []urlnorm.Canonical
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}
		canonical, rejectErr := e.normalizer.Normalize(href, referrerURL)
		if rejectErr != nil {
			return
		}
		key := canonical.String()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		links = append(links, canonical)
	})

	return Result{
		Title:    title,
		HasTitle: title != "",
		Text:     text,
		Links:    links,
	}
}

// collapseWhitespace joins on whitespace boundaries, collapsing runs per
// spec §4.6(G)(b).
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
