/*
Responsibilities
- Maintain the set of canonical URLs that have been claimed for crawling
- Guarantee claim(url) is atomic across concurrent workers
- Persist claims durably so a resumed crawl does not redo work

Claim adds URLs and Finalize records their status; neither ever removes one,
so a claimed URL never reverts, even on permanent
failure, to prevent livelock (workers re-discovering and re-queuing the
same failing URL forever).
*/
package visited

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

// Store is component B: the Visited Store. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	claimed map[string]Status
	log     *os.File
}

// NewStore creates a Store backed by a durable append-only JSONL log at
// logPath. If the file already exists, prior Records are replayed so the
// in-memory claimed set reflects earlier runs. Pass an empty logPath for a
// purely in-memory store (acceptable per the spec: durability is
// RECOMMENDED, not required).
func NewStore(logPath string) (*Store, failure.ClassifiedError) {
	s := &Store{claimed: make(map[string]Status)}

	if logPath == "" {
		return s, nil
	}

	if err := s.load(logPath); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, &StoreError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseLogWriteFailure,
		}
	}
	s.log = f
	return s, nil
}

func (s *Store) load(logPath string) failure.ClassifiedError {
	f, err := os.Open(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &StoreError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseLogLoadFailure,
		}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		s.claimed[rec.URL] = rec.Status
	}
	return nil
}

// Claim performs an atomic test-and-set: the first caller for url observes
// New; every subsequent caller (concurrent or later) observes Seen. Claim
// does not itself persist a status — Finalize does, once the fetch reaches
// a terminal outcome.
func (s *Store) Claim(url string) ClaimOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.claimed[url]; exists {
		return Seen
	}
	s.claimed[url] = ""
	return New
}

// Finalize records the terminal status for a previously claimed URL and
// appends a durable log entry. Calling Finalize for a URL that was never
// claimed still records it (defensive; should not happen in correct usage).
func (s *Store) Finalize(url string, status Status) failure.ClassifiedError {
	s.mu.Lock()
	s.claimed[url] = status
	log := s.log
	s.mu.Unlock()

	if log == nil {
		return nil
	}

	rec := Record{URL: url, Timestamp: time.Now(), Status: status}
	line, err := json.Marshal(rec)
	if err != nil {
		return &StoreError{Message: err.Error(), Retryable: false, Cause: ErrCauseLogWriteFailure}
	}

	s.mu.Lock()
	_, writeErr := fmt.Fprintf(log, "%s\n", line)
	s.mu.Unlock()
	if writeErr != nil {
		return &StoreError{Message: writeErr.Error(), Retryable: true, Cause: ErrCauseLogWriteFailure}
	}
	return nil
}

// VisitedCount returns the number of claimed URLs (new or seen, finalized
// or not).
func (s *Store) VisitedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.claimed)
}

// StatusOf returns the recorded status of url and whether it has been
// claimed at all.
func (s *Store) StatusOf(url string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, exists := s.claimed[url]
	return status, exists
}

func (s *Store) Close() error {
	if s.log == nil {
		return nil
	}
	return s.log.Close()
}
