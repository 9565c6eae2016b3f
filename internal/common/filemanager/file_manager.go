package filemanager

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/f1o/renovate/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// DefaultMaxReadSize caps reads of configuration and history files.
const DefaultMaxReadSize int64 = 10 * 1024 * 1024

// FileManager provides high-level file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists reports whether path exists and is a regular file.
func (fm *FileManager) FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadFile reads a whole file, refusing anything larger than maxSize bytes.
// The returned error wraps fs.ErrNotExist when the file is missing.
func (fm *FileManager) ReadFile(path string, maxSize int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errorwrapper.WrapErrorf(err, "failed to open file: %s", path)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fm.logger.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	if maxSize <= 0 {
		maxSize = DefaultMaxReadSize
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, errorwrapper.WrapErrorf(err, "failed to read file: %s", path)
	}
	if int64(len(data)) > maxSize {
		return nil, errorwrapper.NewValidationError("file_size", path, fmt.Sprintf("file exceeds %d bytes", maxSize))
	}

	return data, nil
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	if path == "" || path == "." {
		return nil
	}

	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return errorwrapper.NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return errorwrapper.WrapErrorf(err, "failed to create directory: %s", path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// WriteFileAtomic writes data to path+".tmp" and renames it over path, so a
// reader never observes a partially written file.
func (fm *FileManager) WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	if err := fm.EnsureDirectory(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return errorwrapper.WrapErrorf(err, "failed to write temp file: %s", tmpPath)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errorwrapper.WrapErrorf(err, "failed to replace file: %s", path)
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written successfully")
	return nil
}
