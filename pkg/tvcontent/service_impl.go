package tvcontent

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

// service implements the Service interface
type service struct {
	// mu serializes every read-modify-write cycle against the store
	mu        sync.Mutex
	store     DocumentStore
	clock     Clock
	eventSink EventSink
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithDocumentStore sets the store holding the content document
func WithDocumentStore(store DocumentStore) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithClock sets the clock used to assign content ids
func WithClock(clock Clock) Option {
	return func(s *service) {
		s.clock = clock
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		clock:     RealClock{},
		eventSink: NewNoopEventSink(),
	}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, errors.New("document store is required")
	}
	if s.clock == nil {
		s.clock = RealClock{}
	}
	if s.eventSink == nil {
		s.eventSink = NewNoopEventSink()
	}

	return s, nil
}

func (s *service) ListContents(ctx context.Context) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *service) CreateContent(ctx context.Context, req CreateContentRequest) (*Document, error) {
	if err := ValidateCreateContent(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := ContentID(s.clock.Now())
	content := Content{
		ID:      &id,
		URL:     req.URL,
		Delay:   *req.Delay,
		Caption: req.Caption,
	}

	doc, err := s.load(ctx)
	if err != nil {
		// Only an unreadable document starts a fresh collection; a corrupt
		// one is reported so it is not silently overwritten.
		if !IsStoreOp(err, OpRead) {
			return nil, err
		}
		slog.Warn("Starting new content document", "error", err)
		doc = &Document{Contents: []Content{}}
	}

	doc.Contents = append(doc.Contents, content)
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.eventSink.ContentCreated(ctx, &content); err != nil {
		slog.Error("Failed to publish content created event", "content_id", id, "error", err)
	}

	return doc, nil
}

func (s *service) ReplaceContents(ctx context.Context, req ReplaceContentsRequest) (*Document, error) {
	if err := ValidateReplaceContents(req); err != nil {
		return nil, err
	}

	doc := &Document{Contents: make([]Content, 0, len(req.Contents))}
	for _, item := range req.Contents {
		doc.Contents = append(doc.Contents, Content{
			ID:      item.ID,
			URL:     item.URL,
			Delay:   *item.Delay,
			Caption: item.Caption,
			Order:   item.Order,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.eventSink.ContentsReplaced(ctx, doc); err != nil {
		slog.Error("Failed to publish contents replaced event", "count", len(doc.Contents), "error", err)
	}

	return doc, nil
}

func (s *service) DeleteContent(ctx context.Context, id int64) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// Ids are not unique; only the first match is removed.
	idx := slices.IndexFunc(doc.Contents, func(c Content) bool {
		return c.ID != nil && *c.ID == id
	})
	if idx < 0 {
		return nil, ErrContentNotFound
	}
	doc.Contents = slices.Delete(doc.Contents, idx, idx+1)

	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.eventSink.ContentDeleted(ctx, id); err != nil {
		slog.Error("Failed to publish content deleted event", "content_id", id, "error", err)
	}

	return doc, nil
}

// load reads and decodes the document. Callers must hold s.mu.
func (s *service) load(ctx context.Context) (*Document, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, &StoreError{Op: OpRead, Err: err}
	}

	doc, err := Unmarshal(data)
	if err != nil {
		return nil, &StoreError{Op: OpDecode, Err: err}
	}
	return doc, nil
}

// save encodes doc and overwrites the store. Callers must hold s.mu.
func (s *service) save(ctx context.Context, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return &StoreError{Op: OpEncode, Err: err}
	}

	if err := s.store.Write(ctx, data); err != nil {
		return &StoreError{Op: OpWrite, Err: err}
	}
	return nil
}
