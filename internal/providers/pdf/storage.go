package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage persists a rendered document and returns its public URL.
type Storage interface {
	Put(ctx context.Context, key string, pdf []byte) (string, error)
}

// FileStorage writes rendered labels to a local directory. Object storage can
// replace this behind the same interface.
type FileStorage struct {
	dir     string
	baseURL string
}

func NewFileStorage(dir, baseURL string) *FileStorage {
	return &FileStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *FileStorage) Put(ctx context.Context, key string, pdf []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create label dir: %w", err)
	}
	name := key + ".pdf"
	if err := os.WriteFile(filepath.Join(s.dir, name), pdf, 0o644); err != nil {
		return "", fmt.Errorf("write label: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
