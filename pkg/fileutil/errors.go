package fileutil

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/rohmanhakim/sitecrawler/pkg/failure"
)

type FileErrorCause string

const (
	ErrCausePathError  FileErrorCause = "path error"
	ErrCauseDiskFull   FileErrorCause = "disk full"
	ErrCauseWriteError FileErrorCause = "write error"
)

type FileError struct {
	Message   string
	Retryable bool
	Cause     FileErrorCause
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s, %s", e.Cause, e.Message)
}

func (e *FileError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *FileError) IsRetryable() bool {
	return e.Retryable
}

// classifyWriteError maps a raw filesystem error to a FileError, detecting
// ENOSPC (disk full) as a distinct, non-retryable-by-hammering cause so
// callers can decide not to spin retries against a full disk.
func classifyWriteError(err error) *FileError {
	if errors.Is(err, syscall.ENOSPC) {
		return &FileError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseDiskFull,
		}
	}
	return &FileError{
		Message:   err.Error(),
		Retryable: true,
		Cause:     ErrCauseWriteError,
	}
}
