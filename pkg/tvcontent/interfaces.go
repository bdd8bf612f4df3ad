package tvcontent

import "context"

// DocumentStore persists the raw content document.
type DocumentStore interface {
	// Read returns the persisted document bytes.
	// It returns ErrDocumentNotFound when nothing has been written yet.
	Read(ctx context.Context) ([]byte, error)

	// Write overwrites the persisted document with data
	Write(ctx context.Context, data []byte) error
}

// EventSink receives notifications about successful mutations
type EventSink interface {
	// ContentCreated is fired after a content item is appended
	ContentCreated(ctx context.Context, content *Content) error

	// ContentsReplaced is fired after a bulk replace
	ContentsReplaced(ctx context.Context, doc *Document) error

	// ContentDeleted is fired after a content item is removed
	ContentDeleted(ctx context.Context, id int64) error
}

// Service is the content board API used by the HTTP layer.
type Service interface {
	// ListContents returns the persisted document
	ListContents(ctx context.Context) (*Document, error)

	// CreateContent validates req, stamps it with a new id and appends it
	CreateContent(ctx context.Context, req CreateContentRequest) (*Document, error)

	// ReplaceContents validates req and overwrites the whole collection
	ReplaceContents(ctx context.Context, req ReplaceContentsRequest) (*Document, error)

	// DeleteContent removes the first item whose id matches
	DeleteContent(ctx context.Context, id int64) (*Document, error)
}
