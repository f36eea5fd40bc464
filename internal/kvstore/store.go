// Package kvstore provides the local key-value byte store backing cart
// persistence. Each key maps to one file under the store's root directory,
// in the spirit of browser local storage: no transactions, no expiry, the
// last write wins.
package kvstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kvstore: key not found")

// Store manages byte values keyed by name, rooted at a single directory.
type Store struct {
	dir string
}

// New opens (creating if needed) a store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: ensure %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing this store.
func (s *Store) Dir() string {
	return s.dir
}

// Put writes value under key, overwriting any previous value.
func (s *Store) Put(key string, value []byte) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	return os.WriteFile(path, value, 0o644)
}

// Get reads the value stored under key. A key that was never written
// returns ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kvstore: read %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("kvstore: delete %s: %w", key, err)
	}
	return nil
}

// keyPath validates the key and resolves it inside the store directory.
// Keys are restricted to a flat, conservative charset so a key can never
// escape the root.
func (s *Store) keyPath(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("kvstore: key is required")
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return "", fmt.Errorf("kvstore: invalid key %q", key)
		}
	}
	return filepath.Join(s.dir, key), nil
}
