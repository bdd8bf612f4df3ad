package tvcontent

import (
	"encoding/json"
	"time"
)

// Content is a single displayable item.
//
// ID is a millisecond timestamp assigned by the service on create. Items
// supplied through a bulk replace keep whatever ID the caller sent, or none.
type Content struct {
	ID      *int64 `json:"id,omitempty"`
	URL     string `json:"url"`
	Delay   int64  `json:"delay"`
	Caption string `json:"caption"`
	Order   *int64 `json:"order,omitempty"`
}

// Document is the persisted collection. Order of Contents is significant.
type Document struct {
	Contents []Content `json:"contents"`
}

// CreateContentRequest is the input for creating one content item.
// A client supplied id is not part of the request and is never read.
type CreateContentRequest struct {
	URL     string `json:"url" form:"url" validate:"required,url"`
	Delay   *int64 `json:"delay" form:"delay" validate:"required,gt=0"`
	Caption string `json:"caption" form:"caption"`
}

// ReplaceContentItem is one entry of a bulk replace.
type ReplaceContentItem struct {
	ID      *int64 `json:"id" form:"id"`
	URL     string `json:"url" form:"url" validate:"required,url"`
	Delay   *int64 `json:"delay" form:"delay" validate:"required,gt=0"`
	Order   *int64 `json:"order" form:"order" validate:"required,gt=0"`
	Caption string `json:"caption" form:"caption"`
}

// ReplaceContentsRequest is the input for a bulk replace.
type ReplaceContentsRequest struct {
	Contents []ReplaceContentItem `json:"contents" form:"contents" validate:"required,dive"`
}

// Marshal serializes a document the way it is persisted.
// A nil collection is written as an empty array.
func Marshal(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}
	if doc.Contents == nil {
		doc = &Document{Contents: []Content{}}
	}
	return json.Marshal(doc)
}

// Unmarshal parses a persisted document.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Contents == nil {
		doc.Contents = []Content{}
	}
	return &doc, nil
}

// Clock abstracts time retrieval so id assignment is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// ContentID returns the id assigned to content created at t.
func ContentID(t time.Time) int64 {
	return t.UnixMilli()
}
