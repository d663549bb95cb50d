package persist

import "time"

// PageMetadata is the JSON document written alongside an HTML page's
// extracted text (§4.7).
type PageMetadata struct {
	URL        string            `json:"url"`
	Title      string            `json:"title"`
	Timestamp  time.Time         `json:"timestamp"`
	Headers    map[string]string `json:"headers"`
	StatusCode int               `json:"status_code"`
}

// PDFExtractionMeta is the nested summary of a PDF text extraction, embedded
// in a file's metadata JSON when the download was a PDF (§4.7).
type PDFExtractionMeta struct {
	Backend    string `json:"backend"`
	TextLength int    `json:"text_length"`
	TextPath   string `json:"text_path"`
}

// FileMetadata is the JSON document written alongside a downloaded file's
// raw bytes (§4.7).
type FileMetadata struct {
	URL        string             `json:"url"`
	Filename   string             `json:"filename"`
	Category   string             `json:"category"`
	Size       int64              `json:"size"`
	Timestamp  time.Time          `json:"timestamp"`
	Headers    map[string]string  `json:"headers"`
	StatusCode int                `json:"status_code"`
	Filepath   string             `json:"filepath"`
	PDF        *PDFExtractionMeta `json:"pdf_extraction,omitempty"`
}

// PageResult reports where an HTML page's artifacts landed.
type PageResult struct {
	TextPath string
	MetaPath string
}

// FileResult reports where a downloaded file's artifacts landed.
type FileResult struct {
	FilePath string
	MetaPath string
}
