package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gamegrove/internal/config"

	"github.com/google/uuid"
)

// FileStore keeps uploaded game archives on local disk under opaque names.
// Only zip files within the size ceiling are accepted.
type FileStore struct {
	dir      string
	maxBytes int64
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: config.MaxUploadBytes}, nil
}

// Save streams src into the store and returns the opaque stored name.
// The original name only contributes its extension.
func (fs *FileStore) Save(src io.Reader, originalName string, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext != ".zip" {
		return "", validationErrorf("only zip uploads are allowed")
	}
	if size > fs.maxBytes {
		return "", validationErrorf("file exceeds the %dMB upload limit", fs.maxBytes/(1024*1024))
	}

	name := uuid.NewString() + ext
	path := filepath.Join(fs.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	// Cap the copy regardless of the declared size.
	written, err := io.Copy(dst, io.LimitReader(src, fs.maxBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > fs.maxBytes {
		err = validationErrorf("file exceeds the %dMB upload limit", fs.maxBytes/(1024*1024))
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return name, nil
}

// Path resolves a stored name to its on-disk path.
func (fs *FileStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrNotFound
	}
	path := filepath.Join(fs.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (fs *FileStore) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(fs.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
