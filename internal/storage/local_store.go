package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/TheMichaelB/vecfmt/internal/events"
	"github.com/TheMichaelB/vecfmt/internal/models"
)

// LocalStore implements LineStore on the local file system.
type LocalStore struct {
	logger      *events.Logger
	maxFileSize int64
}

// NewLocalStore creates a local file store.
func NewLocalStore(logger *events.Logger) *LocalStore {
	return &LocalStore{
		logger:      logger.WithField("component", "local_store"),
		maxFileSize: 16 * 1024 * 1024, // vector dumps are small
	}
}

// SetMaxFileSize sets the maximum file size limit.
func (s *LocalStore) SetMaxFileSize(size int64) {
	s.maxFileSize = size
}

// ReadLines reads the whole file and splits it into lines.
func (s *LocalStore) ReadLines(path string) ([]string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, &models.FileAccessError{Op: "open", Path: path, Err: err}
	}
	if stat.IsDir() {
		return nil, &models.FileAccessError{Op: "open", Path: path, Err: fmt.Errorf("is a directory")}
	}
	if stat.Size() > s.maxFileSize {
		return nil, &models.FileAccessError{
			Op:   "read",
			Path: path,
			Err:  fmt.Errorf("file too large: %d bytes (max: %d)", stat.Size(), s.maxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.FileAccessError{Op: "read", Path: path, Err: err}
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, &models.FileAccessError{Op: "read", Path: path, Err: err}
	}

	if models.IsBinaryText([]byte(text)) {
		return nil, &models.FileAccessError{Op: "read", Path: path, Err: fmt.Errorf("not a text file")}
	}

	lines := SplitLines(text)
	s.logger.WithFields(map[string]interface{}{
		"path":  path,
		"size":  len(data),
		"lines": len(lines),
	}).Debug("Read file")

	return lines, nil
}

// WriteLines saves lines atomically: a temp file in the target directory is
// synced and renamed over path, so a failed run never leaves partial output.
func (s *LocalStore) WriteLines(path string, lines []string, mode os.FileMode) (WriteResult, error) {
	data := []byte(strings.Join(lines, ""))

	if int64(len(data)) > s.maxFileSize {
		return WriteResult{}, &models.FileAccessError{
			Op:   "write",
			Path: path,
			Err:  fmt.Errorf("file too large: %d bytes (max: %d)", len(data), s.maxFileSize),
		}
	}

	tempPath := filepath.Join(filepath.Dir(path),
		fmt.Sprintf(".%s.tmp.%d", filepath.Base(path), time.Now().UnixNano()))

	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, mode)
	if err != nil {
		return WriteResult{}, &models.FileAccessError{Op: "create", Path: path, Err: err}
	}

	success := false
	defer func() {
		tempFile.Close()
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return WriteResult{}, &models.FileAccessError{Op: "write", Path: path, Err: err}
	}

	if err := tempFile.Sync(); err != nil {
		return WriteResult{}, &models.FileAccessError{Op: "sync", Path: path, Err: err}
	}
	tempFile.Close()

	if err := os.Rename(tempPath, path); err != nil {
		return WriteResult{}, &models.FileAccessError{Op: "rename", Path: path, Err: err}
	}

	success = true

	result := WriteResult{
		Path:   path,
		Lines:  len(lines),
		Size:   int64(len(data)),
		Digest: Digest(data),
	}

	s.logger.WithFields(map[string]interface{}{
		"path":   path,
		"lines":  result.Lines,
		"size":   result.Size,
		"digest": result.Digest,
	}).Debug("File written")

	return result, nil
}

// Exists checks if a file exists.
func (s *LocalStore) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
