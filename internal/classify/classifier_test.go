package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_DocumentSuffixes(t *testing.T) {
	for _, path := range []string{"/doc.pdf", "/report.docx", "/notes.TXT"} {
		action := Classify(path)
		assert.Equal(t, ActionDownloadFile, action.Kind, path)
		assert.Equal(t, CategoryDocument, action.Category, path)
	}
}

func TestClassify_UnknownSuffixYieldsOther(t *testing.T) {
	action := Classify("/archive.xyz")
	assert.Equal(t, ActionDownloadFile, action.Kind)
	assert.Equal(t, CategoryOther, action.Category)
}

func TestClassify_NoSuffixYieldsCrawlPage(t *testing.T) {
	for _, path := range []string{"/", "/docs/", "/api/v1/users", "/path.with.dots/page"} {
		action := Classify(path)
		assert.Equal(t, ActionCrawlPage, action.Kind, path)
	}
}

func TestClassify_TotalOverSuffixedURLs(t *testing.T) {
	// Invariant 4: every non-empty path suffix maps to exactly one category.
	paths := []string{"/a.pdf", "/b.xlsx", "/c.zip", "/d.jpg", "/e.mp3", "/f.mp4", "/g.py", "/h.json", "/i.epub", "/j.weird"}
	for _, path := range paths {
		action := Classify(path)
		assert.Equal(t, ActionDownloadFile, action.Kind, path)
		assert.NotEmpty(t, action.Category, path)
	}
}

func TestSuffix_IgnoresDotsInDirectorySegments(t *testing.T) {
	assert.Equal(t, "", Suffix("/v1.2/docs"))
	assert.Equal(t, ".pdf", Suffix("/v1.2/doc.pdf"))
}

func TestSuffix_TrailingDotHasNoSuffix(t *testing.T) {
	assert.Equal(t, "", Suffix("/weird."))
}
