package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileExtension(t *testing.T) {
	assert.Equal(t, "pdf", GetFileExtension("/a/b/doc.pdf"))
	assert.Equal(t, "", GetFileExtension("/a/b/doc"))
	assert.Equal(t, "gz", GetFileExtension("archive.tar.gz"))
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	err := EnsureDir(dir, "nested", "path")
	require.Nil(t, err)

	info, statErr := os.Stat(filepath.Join(dir, "nested", "path"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestResolveCollision_FreePathReturnedAsIs(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.pdf")

	resolved, err := ResolveCollision(target)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}

func TestResolveCollision_AppendsIncrementingCounter(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	resolved, err := ResolveCollision(target)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doc_1.pdf"), resolved)

	require.NoError(t, os.WriteFile(resolved, []byte("y"), 0644))
	resolved2, err := ResolveCollision(target)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doc_2.pdf"), resolved2)
}

func TestWriteFileAtomic_WritesContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	classifiedErr := WriteFileAtomic(target, []byte("hello world"), 0644)
	require.Nil(t, classifiedErr)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no leftover temp file")
}
