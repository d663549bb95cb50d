package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyEntriesFallsBackToDirect(t *testing.T) {
	r := New(nil)
	entry := r.Acquire(context.Background())
	assert.Equal(t, "", entry.Addr)
}

func TestAcquire_AdvancesCursorAndCountsRotation(t *testing.T) {
	r := New([]Entry{{Addr: "a"}, {Addr: "b"}})

	first := r.Acquire(context.Background())
	second := r.Acquire(context.Background())
	assert.NotEqual(t, first.Addr, second.Addr)
}

func TestAcquire_IncrementsStats(t *testing.T) {
	r := New([]Entry{{Addr: "a"}})
	r.Acquire(context.Background())
	r.Acquire(context.Background())
	assert.Equal(t, 2, r.Stats().TotalUsed)
	assert.Equal(t, 2, r.Stats().Rotations)
}

func TestRecordResult_TracksSuccessAndFailure(t *testing.T) {
	r := New([]Entry{{Addr: "a"}})
	r.RecordResult(true)
	r.RecordResult(false)
	stats := r.Stats()
	assert.Equal(t, 1, stats.SuccessfulRequests)
	assert.Equal(t, 1, stats.FailedRequests)
}

func TestRefresh_KeepsOnlyHealthyEntriesSortedByLatency(t *testing.T) {
	healthyProxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer healthyProxy.Close()

	unhealthyProxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unhealthyProxy.Close()

	r := New([]Entry{{Addr: healthyProxy.URL}, {Addr: unhealthyProxy.URL}})
	r.SetHealthURL("http://example.invalid/ip")
	r.Refresh(context.Background())

	entries := r.entries
	require.Len(t, entries, 1)
	assert.Equal(t, healthyProxy.URL, entries[0].Addr)
}

func TestRefresh_FallsBackToDirectWhenAllProbesFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	down.Close() // closed immediately: connection refused

	r := New([]Entry{{Addr: down.URL}})
	r.SetHealthURL(down.URL)
	r.Refresh(context.Background())

	entries := r.entries
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Addr)
}

func TestLoadFromFile_ParsesWellFormedLinesAndSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proxies.txt")
	content := "1.2.3.4:8080:user:pass\nmalformed-line\n5.6.7.8:3128:u2:p2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	r, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, r.entries, 2)
	assert.Contains(t, r.entries[0].Addr, "1.2.3.4:8080")
	assert.Contains(t, r.entries[1].Addr, "5.6.7.8:3128")
}

func TestLoadFromFile_MissingFileFallsBackToDirect(t *testing.T) {
	r, err := LoadFromFile(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	require.NoError(t, err)
	require.Len(t, r.entries, 1)
	assert.Equal(t, "", r.entries[0].Addr)
}

func TestAcquire_ConcurrentCallersGetDistinctRotations(t *testing.T) {
	r := New([]Entry{{Addr: "a"}, {Addr: "b"}, {Addr: "c"}})
	r.SetUpdateInterval(0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Acquire(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, r.Stats().TotalUsed)
}
