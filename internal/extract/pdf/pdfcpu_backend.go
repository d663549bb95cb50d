/*
Responsibilities
- Extract visible text from a PDF's content streams without any OCR step

pdfcpu's api package exposes content-stream extraction (ExtractContentFile),
not a ready-made "text" API: it writes one raw content-stream file per page.
This backend drives that extraction into a scratch directory, then walks the
small set of text-showing operators (Tj, TJ, ') that the PDF content-stream
grammar defines to recover the glyph-run strings. Page content files are
read in lexical file-name order, and within each file the Tj/' operands are
emitted before the TJ array operands, so runs of the two kinds are not
interleaved in content-stream order. This is deliberately literal-string-only (no glyph-to-
Unicode CMap resolution): a PDF whose font encoding defeats this path is
expected to fall further down the backend list to an OCR-capable backend.
*/
package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PdfcpuBackend is the native-text backend: the first entry of the fixed
// ordered backend list (§4.6(H), §9 Design Notes).
type PdfcpuBackend struct{}

func NewPdfcpuBackend() *PdfcpuBackend {
	return &PdfcpuBackend{}
}

func (b *PdfcpuBackend) Name() string {
	return "pdfcpu-native"
}

func (b *PdfcpuBackend) Extract(pdfBytes []byte) (string, error) {
	scratchDir, err := os.MkdirTemp("", "pdfcpu-extract-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(scratchDir)

	inputPath := filepath.Join(scratchDir, "input.pdf")
	if err := os.WriteFile(inputPath, pdfBytes, 0600); err != nil {
		return "", err
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(inputPath, scratchDir, nil, conf); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(scratchDir)
	if err != nil {
		return "", err
	}

	var contentFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.Contains(entry.Name(), "_Content_") {
			contentFiles = append(contentFiles, filepath.Join(scratchDir, entry.Name()))
		}
	}
	sort.Strings(contentFiles)

	var sb strings.Builder
	for _, path := range contentFiles {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		sb.WriteString(extractShowTextOperands(raw))
		sb.WriteString(" ")
	}

	return strings.TrimSpace(sb.String()), nil
}

// textShowPattern matches the PDF content-stream text-showing operators
// that carry literal string operands: "(...) Tj", "(...) '" and the array
// form "[...] TJ". Escaped parentheses inside the literal are tolerated.
var textShowPattern = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*(?:Tj|')`)
var textShowArrayPattern = regexp.MustCompile(`\[((?:[^\[\]]*))\]\s*TJ`)
var arrayStringPattern = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

func extractShowTextOperands(contentStream []byte) string {
	var sb strings.Builder

	for _, match := range textShowPattern.FindAllSubmatch(contentStream, -1) {
		sb.WriteString(unescapePDFString(match[1]))
		sb.WriteString(" ")
	}
	for _, match := range textShowArrayPattern.FindAllSubmatch(contentStream, -1) {
		for _, strMatch := range arrayStringPattern.FindAllSubmatch(match[1], -1) {
			sb.WriteString(unescapePDFString(strMatch[1]))
		}
		sb.WriteString(" ")
	}

	return sb.String()
}

func unescapePDFString(raw []byte) string {
	var out bytes.Buffer
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				out.WriteByte('\n')
			case 'r':
				out.WriteByte('\r')
			case 't':
				out.WriteByte('\t')
			case '(', ')', '\\':
				out.WriteByte(raw[i])
			default:
				if raw[i] >= '0' && raw[i] <= '7' {
					// octal escape, up to 3 digits
					j := i
					for j < len(raw) && j < i+3 && raw[j] >= '0' && raw[j] <= '7' {
						j++
					}
					if code, err := strconv.ParseInt(string(raw[i:j]), 8, 32); err == nil {
						out.WriteByte(byte(code))
					}
					i = j - 1
				} else {
					out.WriteByte(raw[i])
				}
			}
			continue
		}
		out.WriteByte(raw[i])
	}
	return out.String()
}
