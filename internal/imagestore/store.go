// Package imagestore persists synthesized images to a local directory.
package imagestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jonathan/content-pipeline/internal/content"
)

// StorageError represents a local file write failure.
type StorageError struct {
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error: %s", e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Store writes images under a configured directory. Each entry maps to a
// distinct filename because the entry id is part of the name, so concurrent
// saves never collide.
type Store struct {
	Dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Save persists the image and returns the path of the stored file. The write
// is atomic from the caller's perspective: bytes go to a temp file in the
// same directory which is then renamed into place.
func (s *Store) Save(img *content.Image, entryID uuid.UUID, topic string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", &StorageError{Message: fmt.Sprintf("failed to create directory %s", s.Dir), Cause: err}
	}

	name := Filename(topic, entryID.String(), img.Format)
	path := filepath.Join(s.Dir, name)

	tmp, err := os.CreateTemp(s.Dir, name+".tmp-*")
	if err != nil {
		return "", &StorageError{Message: "failed to create temp file", Cause: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(img.Bytes); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", &StorageError{Message: fmt.Sprintf("failed to write %s", name), Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", &StorageError{Message: fmt.Sprintf("failed to flush %s", name), Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", &StorageError{Message: fmt.Sprintf("failed to finalize %s", name), Cause: err}
	}

	return path, nil
}

// Filename computes the deterministic name for an entry's image:
// sanitized topic, underscore, full entry id, extension. The id being part
// of the name is what keeps filenames unique across entries.
func Filename(topic, entryID, format string) string {
	if format == "" {
		format = "png"
	}
	return fmt.Sprintf("%s_%s.%s", SanitizeTopic(topic), entryID, format)
}
