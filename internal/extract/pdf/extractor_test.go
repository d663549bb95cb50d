package pdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	name string
	text string
	err  error
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Extract(pdfBytes []byte) (string, error) {
	return b.text, b.err
}

func TestExtract_LongestBackendWins(t *testing.T) {
	e := NewExtractor(
		&stubBackend{name: "short", text: "hi"},
		&stubBackend{name: "long", text: "a much longer extraction result"},
	)

	result, err := e.Extract([]byte("irrelevant"))
	require.NoError(t, err)
	assert.Equal(t, "long", result.Backend)
	assert.Equal(t, "a much longer extraction result", result.Text)
}

func TestExtract_TiesBrokenByDeclaredOrder(t *testing.T) {
	e := NewExtractor(
		&stubBackend{name: "first", text: "equal length"},
		&stubBackend{name: "second", text: "equal length"},
	)

	result, err := e.Extract([]byte("irrelevant"))
	require.NoError(t, err)
	assert.Equal(t, "first", result.Backend)
}

func TestExtract_AllEmptyYieldsError(t *testing.T) {
	e := NewExtractor(
		&stubBackend{name: "empty1", text: ""},
		&stubBackend{name: "empty2", text: "   "},
	)

	_, err := e.Extract([]byte("irrelevant"))
	require.Error(t, err)
	var extractErr *ExtractError
	require.ErrorAs(t, err, &extractErr)
}

func TestExtract_BackendErrorDoesNotAbortOthers(t *testing.T) {
	e := NewExtractor(
		&stubBackend{name: "broken", err: errors.New("boom")},
		&stubBackend{name: "working", text: "recovered text"},
	)

	result, err := e.Extract([]byte("irrelevant"))
	require.NoError(t, err)
	assert.Equal(t, "working", result.Backend)
	assert.Equal(t, "recovered text", result.Text)
}

func TestExtract_FallbackBackendAlwaysEmpty(t *testing.T) {
	b := NewFallbackBackend("ocr-stub")
	text, err := b.Extract([]byte("irrelevant"))
	require.NoError(t, err)
	assert.Equal(t, "", text)
}
