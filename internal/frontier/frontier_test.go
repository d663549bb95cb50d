package frontier

import (
	"net/url"
	"sync"
	"testing"

	"github.com/rohmanhakim/sitecrawler/internal/urlnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonical(t *testing.T, raw string) urlnorm.Canonical {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return urlnorm.NewCanonical(*u)
}

func TestFrontier_PopReturnsEntriesInPushOrder(t *testing.T) {
	f := New(nil)
	f.Push(NewEntry(canonical(t, "https://example.com/a"), 0))
	f.Push(NewEntry(canonical(t, "https://example.com/b"), 1))
	f.Push(NewEntry(canonical(t, "https://example.com/c"), 1))

	first, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/a", first.URL.String())

	second, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/b", second.URL.String())
}

func TestFrontier_PopOnEmptyQueueReportsFalse(t *testing.T) {
	f := New(nil)
	_, ok := f.Pop()
	assert.False(t, ok)
}

func TestFrontier_MaxDepthRejectsDeeperEntries(t *testing.T) {
	maxDepth := 1
	f := New(&maxDepth)

	accepted := f.Push(NewEntry(canonical(t, "https://example.com/shallow"), 1))
	assert.True(t, accepted)

	rejected := f.Push(NewEntry(canonical(t, "https://example.com/deep"), 2))
	assert.False(t, rejected)
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_NoMaxDepthAcceptsAnyDepth(t *testing.T) {
	f := New(nil)
	accepted := f.Push(NewEntry(canonical(t, "https://example.com/deep"), 50))
	assert.True(t, accepted)
}

func TestFrontier_ClaimedCountTracksPops(t *testing.T) {
	f := New(nil)
	f.Push(NewEntry(canonical(t, "https://example.com/a"), 0))
	f.Push(NewEntry(canonical(t, "https://example.com/b"), 1))

	f.Pop()
	assert.Equal(t, 1, f.ClaimedCount())
	f.Pop()
	assert.Equal(t, 2, f.ClaimedCount())
}

func TestFrontier_PopBatchStopsEarlyWhenQueueExhausted(t *testing.T) {
	f := New(nil)
	f.Push(NewEntry(canonical(t, "https://example.com/a"), 0))
	f.Push(NewEntry(canonical(t, "https://example.com/b"), 1))

	batch := f.PopBatch(5)
	assert.Len(t, batch, 2)
}

func TestFrontier_IsEmptyReflectsQueueState(t *testing.T) {
	f := New(nil)
	assert.True(t, f.IsEmpty())
	f.Push(NewEntry(canonical(t, "https://example.com/a"), 0))
	assert.False(t, f.IsEmpty())
}

// A zero-value *FIFOQueue[T] (nil) must not panic on Dequeue/Size; this
// guards against a regression where Frontier's queue field was left
// uninitialized by a zero-value Frontier{}.
func TestFIFOQueue_NilQueueDoesNotPanic(t *testing.T) {
	var q *FIFOQueue[Entry]
	_, ok := q.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Size())
}

func TestFrontier_ConcurrentPushAndPopAreRace_Free(t *testing.T) {
	f := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.Push(NewEntry(canonical(t, "https://example.com/x"), i%3))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, f.Len())

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Pop()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, 50, f.ClaimedCount())
}
