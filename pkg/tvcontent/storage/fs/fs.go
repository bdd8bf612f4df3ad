package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tendant/tv-content/pkg/tvcontent"
)

// DefaultPath is the document location used when Config.Path is empty
const DefaultPath = "contents.json"

// Config options for the filesystem store
type Config struct {
	Path string // Path of the JSON document
}

// Store is a filesystem implementation of the tvcontent.DocumentStore interface.
// The document is written through a temp file and renamed into place.
type Store struct {
	path string
}

// New creates a new filesystem store. The parent directory is created if needed.
func New(config Config) (*Store, error) {
	if config.Path == "" {
		config.Path = DefaultPath
	}

	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}

	return &Store{path: config.Path}, nil
}

// Path returns the document location
func (s *Store) Path() string {
	return s.path
}

// Read reads the whole document from disk
func (s *Store) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", tvcontent.ErrDocumentNotFound, s.path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Write overwrites the document on disk
func (s *Store) Write(ctx context.Context, data []byte) error {
	// Temp file in the same directory so the rename stays atomic
	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), ".tmp-contents-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

var _ tvcontent.DocumentStore = (*Store)(nil)
