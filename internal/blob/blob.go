// Package blob provides simple keyed byte storage on the local filesystem.
// Application state is saved as JSON documents under the user's home directory.
package blob

import (
	"os"
	"path/filepath"

	"github.com/vkazakov/repetitor/internal/errors"
)

// Store is a keyed byte store. Get reports whether the key existed so callers
// can distinguish "no state yet" from a read failure.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, data []byte) error
}

// FileStore stores each key as a JSON file in a directory.
type FileStore struct {
	dir string
}

// DefaultDir returns the default storage directory (~/.repetitor).
func DefaultDir() (string, error) {
	const op = errors.Op("blob.DefaultDir")

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.E(op, errors.KindConfig, "failed to determine home directory", err)
	}
	return filepath.Join(home, ".repetitor"), nil
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	const op = errors.Op("blob.NewFileStore")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.E(op, errors.KindIO, "failed to create storage directory", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the bytes stored under key. The second return value is false if
// the key has never been written.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.StateLoadFailed(key, err)
	}
	return data, true, nil
}

// Set writes data under key, replacing any previous value.
func (s *FileStore) Set(key string, data []byte) error {
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return errors.StateSaveFailed(key, err)
	}
	return nil
}

// Delete removes the value stored under key. Missing keys are not an error.
func (s *FileStore) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.E(errors.Op("blob.Delete"), errors.KindIO, err)
	}
	return nil
}

// Clear removes every stored value. Used by the clean command.
func (s *FileStore) Clear() (int, error) {
	const op = errors.Op("blob.Clear")

	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return 0, errors.E(op, errors.KindIO, err)
	}
	removed := 0
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return removed, errors.E(op, errors.KindIO, err)
		}
		removed++
	}
	return removed, nil
}
