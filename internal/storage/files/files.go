// Package files stores uploaded permit pictures on local disk.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Store struct {
	dir string
}

// NewStore creates the permit directory if needed and returns a store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create permit dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SavePermit writes the uploaded file under a fresh uuid name, keeping the
// original extension, and returns the stored filename.
func (s *Store) SavePermit(filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create permit file: %w", err)
	}
	defer f.Close()

	if _, err = io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to save permit file: %w", err)
	}

	return name, nil
}

// Dir returns the directory permits are stored in.
func (s *Store) Dir() string {
	return s.dir
}
