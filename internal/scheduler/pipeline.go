/*
Per-URL pipeline: A (already done by the time an Entry reaches here, since
links are normalized before being pushed) → B (claim) → F (classify) →
D (fetch) → G/H/raw-store → I (persist) → new links back onto the
frontier. Mirrors the teacher's worker body in
internal/scheduler/scheduler.go's ExecuteCrawling loop, split across one
goroutine per entry instead of the teacher's single sequential pass.
*/
package scheduler

import (
	"context"
	"time"

	"github.com/rohmanhakim/sitecrawler/internal/classify"
	"github.com/rohmanhakim/sitecrawler/internal/contenthash"
	"github.com/rohmanhakim/sitecrawler/internal/fetcher"
	"github.com/rohmanhakim/sitecrawler/internal/frontier"
	"github.com/rohmanhakim/sitecrawler/internal/metadata"
	"github.com/rohmanhakim/sitecrawler/internal/persist"
	"github.com/rohmanhakim/sitecrawler/internal/visited"
)

func (s *Scheduler) processEntry(ctx context.Context, entry frontier.Entry) {
	urlStr := entry.URL.String()

	if s.visitedStore.Claim(urlStr) == visited.Seen {
		return
	}

	action := s.classifierFn(entry.URL.URL().Path)
	if action.Kind == classify.ActionDownloadFile {
		s.handleFile(ctx, entry, action.Category)
		return
	}
	s.handlePage(ctx, entry)
}

func (s *Scheduler) handlePage(ctx context.Context, entry frontier.Entry) {
	urlStr := entry.URL.String()
	target := fetcher.NewTarget(entry.URL.URL(), entry.Depth)

	result, err := s.fetcher.Fetch(ctx, target, s.retryParam)
	if err != nil {
		s.recorder.RecordURLFailed(urlStr)
		s.finalize(urlStr, visited.StatusFailed)
		return
	}

	digest := contenthash.Digest(result.Body)
	if !s.contentHashes.CheckAndAdd(digest) {
		s.finalize(urlStr, visited.StatusOK)
		return
	}

	extraction := s.htmlExtractor.Extract(result.Body, entry.URL)

	if _, persistErr := s.persister.PersistPage(urlStr, extraction.Title, extraction.Text, result.Headers, result.StatusCode, result.FetchedAt); persistErr != nil {
		s.recorder.RecordURLFailed(urlStr)
		s.finalize(urlStr, visited.StatusFailed)
		return
	}

	s.recorder.RecordPageProcessed()
	s.finalize(urlStr, visited.StatusOK)

	for _, link := range extraction.Links {
		s.frontier.Push(frontier.NewEntry(link, entry.Depth+1))
	}
}

func (s *Scheduler) handleFile(ctx context.Context, entry frontier.Entry, category classify.FileCategory) {
	urlStr := entry.URL.String()

	if !s.cfg.DownloadFiles() {
		s.finalize(urlStr, visited.StatusOK)
		return
	}

	target := fetcher.NewTarget(entry.URL.URL(), entry.Depth)
	result, err := s.fetcher.Fetch(ctx, target, s.retryParam)
	if err != nil {
		s.recorder.RecordURLFailed(urlStr)
		s.finalize(urlStr, visited.StatusFailed)
		return
	}

	var pdfMeta *persist.PDFExtractionMeta
	if category == classify.CategoryDocument && classify.Suffix(entry.URL.URL().Path) == ".pdf" {
		pdfMeta = s.extractPDFText(urlStr, result.Body)
	}

	if _, persistErr := s.persister.PersistFile(urlStr, string(category), entry.URL.URL().Path, result.Body, result.ContentType, result.Headers, result.StatusCode, result.FetchedAt, pdfMeta); persistErr != nil {
		s.recorder.RecordURLFailed(urlStr)
		s.finalize(urlStr, visited.StatusFailed)
		return
	}

	s.recorder.RecordFileDownloaded(string(category))
	s.finalize(urlStr, visited.StatusOK)
}

// extractPDFText runs the PDF extraction backends and persists the winning
// text, if any. Extraction failure is recorded but never fails the
// surrounding file download: the raw bytes are kept either way (§4.6(H)).
func (s *Scheduler) extractPDFText(urlStr string, body []byte) *persist.PDFExtractionMeta {
	result, err := s.pdfExtractor.Extract(body)
	if err != nil {
		s.recorder.RecordPDFFailed()
		s.recorder.RecordError(time.Now(), "scheduler", "extractPDFText", metadata.CauseContentInvalid, err.Error(), []metadata.Attribute{metadata.NewAttr(metadata.AttrURL, urlStr)})
		return nil
	}

	textPath, persistErr := s.persister.PersistPDFText(urlStr, result.Text)
	if persistErr != nil {
		s.recorder.RecordPDFFailed()
		return nil
	}

	s.recorder.RecordPDFProcessed(result.Backend)
	return &persist.PDFExtractionMeta{
		Backend:    result.Backend,
		TextLength: len(result.Text),
		TextPath:   textPath,
	}
}

func (s *Scheduler) finalize(urlStr string, status visited.Status) {
	if err := s.visitedStore.Finalize(urlStr, status); err != nil {
		s.recorder.RecordError(time.Now(), "scheduler", "finalize", metadata.CauseStorageFailure, err.Error(), []metadata.Attribute{metadata.NewAttr(metadata.AttrURL, urlStr)})
	}
}
