package pdf

import "strings"

// Extractor runs a fixed ordered set of backends over a PDF and keeps the
// longest result (§4.6(H)). Order matters only for tie-breaking: the first
// backend to reach the maximum stripped length wins.
type Extractor struct {
	backends []Backend
}

func NewExtractor(backends ...Backend) *Extractor {
	return &Extractor{backends: backends}
}

func DefaultExtractor() *Extractor {
	return NewExtractor(NewPdfcpuBackend(), NewFallbackBackend("ocr-stub"))
}

// Extract runs every backend, independently, and returns the output of
// whichever produced the longest stripped text. A backend that errors is
// treated as having produced empty text; it never aborts the others. If
// every backend yields empty text, Extract returns an ExtractError and the
// caller keeps the downloaded bytes without emitting a text artifact.
func (e *Extractor) Extract(pdfBytes []byte) (Result, error) {
	var best Result
	bestLen := -1

	for _, backend := range e.backends {
		text, err := backend.Extract(pdfBytes)
		if err != nil {
			continue
		}
		stripped := strings.TrimSpace(text)
		if len(stripped) > bestLen {
			bestLen = len(stripped)
			best = Result{Text: text, Backend: backend.Name()}
		}
	}

	if bestLen <= 0 {
		return Result{}, &ExtractError{Message: "no backend produced text"}
	}

	return best, nil
}
