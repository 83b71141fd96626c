// Package storage is the file-storage collaborator. The rest of the
// system only ever carries the reference string it returns; image
// bytes are never interpreted.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists an uploaded file and returns its public reference.
type Store interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}

// allowedExtensions limits uploads to common image formats.
var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// LocalStore writes uploads to a directory served statically under
// publicPrefix.
type LocalStore struct {
	dir          string
	publicPrefix string
}

func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, publicPrefix: publicPrefix}, nil
}

func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join(s.publicPrefix, name), nil
}
