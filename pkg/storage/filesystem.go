package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UploadStore persists uploaded files on disk under a base directory.
//
// Stored names carry a nanosecond timestamp prefix so two uploads of the
// same original filename never collide.
type UploadStore struct {
	baseDir   string
	urlPrefix string
}

// NewUploadStore ensures the base directory exists and returns a handle.
func NewUploadStore(baseDir, urlPrefix string) (*UploadStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &UploadStore{baseDir: baseDir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Store copies the stream to disk under a generated unique name and returns
// the server-relative path clients use to fetch the file back.
func (s *UploadStore) Store(r io.Reader, originalName string) (string, error) {
	name := s.generateName(originalName)
	path := filepath.Join(s.baseDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Save writes the given bytes under a generated unique name.
func (s *UploadStore) Save(originalName string, data []byte) (string, error) {
	name := s.generateName(originalName)
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Open returns a read-only handle for a previously stored file, addressed by
// the relative path Store returned.
func (s *UploadStore) Open(relPath string) (*os.File, error) {
	file, err := os.Open(s.resolve(relPath))
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file if present.
func (s *UploadStore) Delete(relPath string) error {
	if err := os.Remove(s.resolve(relPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// Dir exposes the base directory for static mounting.
func (s *UploadStore) Dir() string {
	return s.baseDir
}

// URLPrefix exposes the public mount point for stored files.
func (s *UploadStore) URLPrefix() string {
	return s.urlPrefix
}

func (s *UploadStore) generateName(originalName string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeName(originalName))
}

func (s *UploadStore) resolve(relPath string) string {
	name := strings.TrimPrefix(relPath, s.urlPrefix)
	name = strings.TrimLeft(name, "/")
	// filepath.Base strips any traversal components a caller may smuggle in.
	return filepath.Join(s.baseDir, filepath.Base(name))
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "file"
	}
	return name
}
