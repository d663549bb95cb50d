/*
Responsibilities
- Write content-addressed text, metadata, and raw file artifacts
- Resolve filename collisions deterministically
- Keep directory creation idempotent

Adapted from the teacher's internal/storage/sink.go: same EnsureDir +
atomic-write + syscall.ENOSPC retryability pattern, generalized from the
teacher's single Markdown artifact to this system's four artifact kinds
(HTML text, HTML metadata, file bytes, file metadata) and its sequential
collision-counter rule (§4.7).
*/
package persist

import (
	"encoding/json"
	"errors"
	"mime"
	"path/filepath"
	"sync"
	"time"

	"github.com/rohmanhakim/sitecrawler/internal/metadata"
	"github.com/rohmanhakim/sitecrawler/pkg/failure"
	"github.com/rohmanhakim/sitecrawler/pkg/fileutil"
	"github.com/rohmanhakim/sitecrawler/pkg/hashutil"
)

type Persister struct {
	rootDir      string
	metadataSink metadata.MetadataSink

	// collisionMu serializes filename collision resolution so two workers
	// downloading same-basename files never race to claim "_1" (§5).
	collisionMu sync.Mutex
}

func NewPersister(rootDir string, metadataSink metadata.MetadataSink) *Persister {
	return &Persister{rootDir: rootDir, metadataSink: metadataSink}
}

func (p *Persister) textDir() string { return filepath.Join(p.rootDir, "text") }
func (p *Persister) metaDir() string { return filepath.Join(p.rootDir, "metadata") }
func (p *Persister) filesDir(category string) string {
	return filepath.Join(p.rootDir, "files", category)
}

// PersistPage writes an HTML page's extracted text and metadata JSON under
// H = MD5(canonicalURL) (§4.7).
func (p *Persister) PersistPage(canonicalURL, title, text string, headers map[string]string, statusCode int, fetchedAt time.Time) (PageResult, failure.ClassifiedError) {
	hash, err := hashutil.HashString(canonicalURL, hashutil.HashAlgoMD5)
	if err != nil {
		return PageResult{}, p.fail(ErrCauseHashComputationFailed, false, canonicalURL, "", err)
	}

	if classified := fileutil.EnsureDir(p.textDir()); classified != nil {
		return PageResult{}, p.wrapFileError(classified, p.textDir())
	}
	textPath := filepath.Join(p.textDir(), hash+".txt")
	if classified := fileutil.WriteFileAtomic(textPath, []byte(text), 0644); classified != nil {
		return PageResult{}, p.wrapFileError(classified, textPath)
	}

	if classified := fileutil.EnsureDir(p.metaDir()); classified != nil {
		return PageResult{}, p.wrapFileError(classified, p.metaDir())
	}
	metaPath := filepath.Join(p.metaDir(), hash+".json")
	meta := PageMetadata{
		URL:        canonicalURL,
		Title:      title,
		Timestamp:  fetchedAt,
		Headers:    headers,
		StatusCode: statusCode,
	}
	if err := p.writeJSON(metaPath, meta); err != nil {
		return PageResult{}, err
	}

	p.metadataSink.RecordArtifact(metadata.ArtifactRecord{Kind: "page_text", Path: textPath})
	p.metadataSink.RecordArtifact(metadata.ArtifactRecord{Kind: "page_metadata", Path: metaPath})

	return PageResult{TextPath: textPath, MetaPath: metaPath}, nil
}

// PersistPDFText writes a PDF's extracted text to text/<H>_pdf.txt (§4.7).
func (p *Persister) PersistPDFText(canonicalURL, text string) (string, failure.ClassifiedError) {
	hash, err := hashutil.HashString(canonicalURL, hashutil.HashAlgoMD5)
	if err != nil {
		return "", p.fail(ErrCauseHashComputationFailed, false, canonicalURL, "", err)
	}

	if classified := fileutil.EnsureDir(p.textDir()); classified != nil {
		return "", p.wrapFileError(classified, p.textDir())
	}
	textPath := filepath.Join(p.textDir(), hash+"_pdf.txt")
	if classified := fileutil.WriteFileAtomic(textPath, []byte(text), 0644); classified != nil {
		return "", p.wrapFileError(classified, textPath)
	}

	p.metadataSink.RecordArtifact(metadata.ArtifactRecord{Kind: "pdf_text", Path: textPath})
	return textPath, nil
}

// PersistFile writes a downloaded file's raw bytes under
// files/<category>/<safe_filename> and its metadata JSON (§4.7). urlPath is
// the path component of the source URL, used to derive the basename;
// contentType seeds the fallback extension guess when the URL has no
// basename at all.
func (p *Persister) PersistFile(canonicalURL, category, urlPath string, body []byte, contentType string, headers map[string]string, statusCode int, fetchedAt time.Time, pdf *PDFExtractionMeta) (FileResult, failure.ClassifiedError) {
	hash, err := hashutil.HashString(canonicalURL, hashutil.HashAlgoMD5)
	if err != nil {
		return FileResult{}, p.fail(ErrCauseHashComputationFailed, false, canonicalURL, "", err)
	}

	dir := p.filesDir(category)
	if classified := fileutil.EnsureDir(dir); classified != nil {
		return FileResult{}, p.wrapFileError(classified, dir)
	}

	filename := safeFilename(urlPath, canonicalURL, hash, contentType)
	proposedPath := filepath.Join(dir, filename)

	p.collisionMu.Lock()
	resolvedPath, resolveErr := fileutil.ResolveCollision(proposedPath)
	if resolveErr != nil {
		p.collisionMu.Unlock()
		return FileResult{}, p.fail(ErrCausePathError, false, canonicalURL, proposedPath, resolveErr)
	}
	if classified := fileutil.WriteFileAtomic(resolvedPath, body, 0644); classified != nil {
		p.collisionMu.Unlock()
		return FileResult{}, p.wrapFileError(classified, resolvedPath)
	}
	p.collisionMu.Unlock()

	if classified := fileutil.EnsureDir(p.metaDir()); classified != nil {
		return FileResult{}, p.wrapFileError(classified, p.metaDir())
	}
	metaPath := filepath.Join(p.metaDir(), hash+"_file.json")
	meta := FileMetadata{
		URL:        canonicalURL,
		Filename:   filepath.Base(resolvedPath),
		Category:   category,
		Size:       int64(len(body)),
		Timestamp:  fetchedAt,
		Headers:    headers,
		StatusCode: statusCode,
		Filepath:   resolvedPath,
		PDF:        pdf,
	}
	if err := p.writeJSON(metaPath, meta); err != nil {
		return FileResult{}, err
	}

	p.metadataSink.RecordArtifact(metadata.ArtifactRecord{Kind: "file", Path: resolvedPath})
	p.metadataSink.RecordArtifact(metadata.ArtifactRecord{Kind: "file_metadata", Path: metaPath})

	return FileResult{FilePath: resolvedPath, MetaPath: metaPath}, nil
}

func (p *Persister) writeJSON(path string, v any) failure.ClassifiedError {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return p.fail(ErrCauseMarshalFailure, false, "", path, err)
	}
	if classified := fileutil.WriteFileAtomic(path, encoded, 0644); classified != nil {
		return p.wrapFileError(classified, path)
	}
	return nil
}

// safeFilename implements §4.7's naming rule: the URL path basename if
// non-empty, else MD5(U) plus a guessed extension or ".unknown".
func safeFilename(urlPath, canonicalURL, hash, contentType string) string {
	base := filepath.Base(urlPath)
	if base != "" && base != "." && base != "/" {
		return base
	}

	ext := guessExtension(contentType)
	return hash + ext
}

func guessExtension(contentType string) string {
	if contentType == "" {
		return ".unknown"
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".unknown"
	}
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ".unknown"
	}
	return exts[0]
}

func (p *Persister) fail(cause PersistErrorCause, retryable bool, url, path string, err error) *PersistError {
	classified := &PersistError{Message: err.Error(), Retryable: retryable, Cause: cause, Path: path}
	p.recordError(url, classified)
	return classified
}

func (p *Persister) wrapFileError(err failure.ClassifiedError, path string) *PersistError {
	var fileErr *fileutil.FileError
	retryable := false
	cause := ErrCauseWriteFailure
	if errors.As(err, &fileErr) {
		switch fileErr.Cause {
		case fileutil.ErrCausePathError:
			cause = ErrCausePathError
		case fileutil.ErrCauseDiskFull:
			cause = ErrCauseDiskFull
		}
		retryable = fileErr.Retryable
	}

	classified := &PersistError{Message: err.Error(), Retryable: retryable, Cause: cause, Path: path}
	p.recordError("", classified)
	return classified
}

func (p *Persister) recordError(url string, err *PersistError) {
	attrs := []metadata.Attribute{metadata.NewAttr(metadata.AttrWritePath, err.Path)}
	if url != "" {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrURL, url))
	}
	p.metadataSink.RecordError(
		time.Now(),
		"persist",
		"Persister.Write",
		mapPersistErrorToMetadataCause(err),
		err.Error(),
		attrs,
	)
}
