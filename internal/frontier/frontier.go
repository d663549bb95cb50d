/*
Responsibilities
- Hold the BFS queue of pending FrontierEntry values
- Enforce the optional max_depth cap
- Bookkeep how many entries have been claimed for the max_pages cap

Adapted from the teacher's internal/frontier/{queue.go,set.go,data.go}:
the generic FIFOQueue[T] is carried unchanged; CrawlToken/
CrawlAdmissionCandidate's depth-and-ordering-only contract becomes this
Frontier's Entry. The teacher never finished wiring these three files
into a concrete scheduler; this type is that wiring, generalized to the
BFS traversal §4.8 specifies.
*/
package frontier

import "sync"

type Frontier struct {
	mu          sync.Mutex
	queue       *FIFOQueue[Entry]
	maxDepth    *int
	claimedCount int
}

func New(maxDepth *int) *Frontier {
	return &Frontier{
		queue:    NewFIFOQueue[Entry](),
		maxDepth: maxDepth,
	}
}

// Push enqueues entry, rejecting it if max_depth is set and entry.Depth
// exceeds it. Returns false when rejected.
func (f *Frontier) Push(entry Entry) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.maxDepth != nil && entry.Depth > *f.maxDepth {
		return false
	}

	f.queue.Enqueue(entry)
	return true
}

// Pop dequeues the next entry in BFS (push) order and increments the
// claimed-count bookkeeping used by the scheduler's max_pages cap.
func (f *Frontier) Pop() (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.queue.Dequeue()
	if !ok {
		return Entry{}, false
	}
	f.claimedCount++
	return entry, true
}

// PopBatch dequeues up to n entries, stopping early if the queue empties.
func (f *Frontier) PopBatch(n int) []Entry {
	batch := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entry, ok := f.Pop()
		if !ok {
			break
		}
		batch = append(batch, entry)
	}
	return batch
}

func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Size()
}

func (f *Frontier) IsEmpty() bool {
	return f.Len() == 0
}

// ClaimedCount returns how many entries have been popped so far, the
// counter the scheduler compares against max_pages (§4.8).
func (f *Frontier) ClaimedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.claimedCount
}
