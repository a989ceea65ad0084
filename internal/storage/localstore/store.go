// Package localstore is a file-per-key local key-value store, the session's
// analogue of browser localStorage. Values are plain structured-text blobs;
// absence or corruption is treated as "no data" by the repositories built on
// top of it.
package localstore

import (
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store holds one file per key inside a single directory.
type Store struct {
	dir string
}

// New opens (creating if needed) the store directory.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create store dir")
	}
	return &Store{dir: dir}, nil
}

// Get returns the stored value for key, or ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "read key %s", key)
	}
	return data, nil
}

// Set replaces the stored value for key. The write goes through a temp file
// and a rename so readers never observe a partial value.
func (s *Store) Set(key string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp for key %s", key)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "write key %s", key)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "close temp for key %s", key)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "replace key %s", key)
	}
	return nil
}

// Delete removes the stored value for key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete key %s", key)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
