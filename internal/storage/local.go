package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes uploaded files under a base directory, one subdirectory
// per tenant. Stored names are random so original file names never hit disk.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("storage base dir is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save streams src to disk and returns the relative path usable as a file URL.
func (s *LocalStore) Save(tenantID, originalName string, src io.Reader) (string, int64, error) {
	dir := filepath.Join(s.baseDir, tenantID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create tenant dir: %w", err)
	}

	name := uuid.NewString()
	if ext := filepath.Ext(originalName); ext != "" && len(ext) <= 8 {
		name += strings.ToLower(ext)
	}
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("write file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(tenantID, name)), written, nil
}

func (s *LocalStore) Remove(relPath string) error {
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid path")
	}
	return os.Remove(filepath.Join(s.baseDir, clean))
}
