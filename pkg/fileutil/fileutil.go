package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

// GetFileExtension extracts the file extension from a path (without the
// leading dot), or "" if there is none.
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

// EnsureDir checks whether dir joined with the given path components exists,
// creating it (and any parents) if not.
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// ResolveCollision returns a path guaranteed not to exist on disk at the
// moment of the check, by appending "_<n>" before the extension of the
// proposed name until a free slot is found. Callers are responsible for
// serializing concurrent calls against the same directory (the Persister
// does this with a single mutex shared by all directories) so that the resolution is injective:
// two distinct proposed names never race to the same resolved path.
//
// n starts at 1, matching the spec's "append _<n>" rule; the unsuffixed name
// is returned first if it is free.
func ResolveCollision(dir string) (string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return dir, nil
	} else if err != nil {
		return "", err
	}

	ext := filepath.Ext(dir)
	base := strings.TrimSuffix(dir, ext)

	for n := 1; ; n++ {
		candidate := base + "_" + strconv.Itoa(n) + ext
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
	}
}

// WriteFileAtomic writes data to path by first writing to a temporary
// sibling file and renaming it into place, so a crash or disk error never
// leaves a truncated file at path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) failure.ClassifiedError {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return classifyWriteError(err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return classifyWriteError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return classifyWriteError(err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return classifyWriteError(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return classifyWriteError(err)
	}
	return nil
}
