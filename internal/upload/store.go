package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Saved describes a stored upload.
type Saved struct {
	// Path is the location on local disk under the generated name.
	Path string
	// OriginalName is the filename the client supplied.
	OriginalName string
}

// Store writes incoming files to a local directory. Stored names are
// derived from the current timestamp plus the original extension so
// concurrent uploads of the same file do not collide.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore constructs a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Save writes the file contents to disk and returns the stored path
// alongside the caller-supplied original name.
func (s *Store) Save(file io.Reader, originalName string) (Saved, error) {
	name := fmt.Sprintf("%d%s", s.now().UnixMilli(), filepath.Ext(originalName))
	path := filepath.Join(s.dir, name)

	out, err := os.Create(path)
	if err != nil {
		return Saved{}, fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(path)
		return Saved{}, fmt.Errorf("write upload file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return Saved{}, fmt.Errorf("close upload file: %w", err)
	}
	return Saved{Path: path, OriginalName: originalName}, nil
}

// Remove deletes a stored file.
func (s *Store) Remove(path string) error {
	return os.Remove(path)
}
