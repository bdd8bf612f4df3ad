package memory

import (
	"context"
	"sync"

	"github.com/tendant/tv-content/pkg/tvcontent"
)

// Store is an in-memory implementation of the tvcontent.DocumentStore interface
type Store struct {
	mu   sync.RWMutex
	data []byte
	// err, when set, is returned by every Read and Write
	err error
}

// New creates a new empty in-memory store
func New() *Store {
	return &Store{}
}

// NewWithDocument creates a store pre-loaded with data
func NewWithDocument(data []byte) *Store {
	s := New()
	s.data = append([]byte(nil), data...)
	return s
}

// Read returns a copy of the stored document
func (s *Store) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}
	if s.data == nil {
		return nil, tvcontent.ErrDocumentNotFound
	}
	return append([]byte(nil), s.data...), nil
}

// Write replaces the stored document
func (s *Store) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.data = append([]byte(nil), data...)
	return nil
}

// FailWith makes every following Read and Write return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err
}

var _ tvcontent.DocumentStore = (*Store)(nil)
