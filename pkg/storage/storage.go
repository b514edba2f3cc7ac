// Package storage is a local-disk file store for uploaded documents
// (doctor profile photos, lab report files).
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Save streams r into a new file under the store root. The original name is
// prefixed with a random id so repeated uploads of the same file never
// collide. Returns the stored file name.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + "_" + filepath.Base(originalName)

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	return name, nil
}

// Path returns the on-disk path for a stored file name. The name is reduced
// to its base component so a crafted value cannot escape the root.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

func (s *Store) Open(name string) (*os.File, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("opening stored file %s: %w", name, err)
	}
	return f, nil
}
