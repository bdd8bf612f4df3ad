package tvcontent

import (
	"context"
	"log/slog"
)

// NoopEventSink is a no-operation implementation of EventSink
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (n *NoopEventSink) ContentCreated(ctx context.Context, content *Content) error {
	return nil
}

func (n *NoopEventSink) ContentsReplaced(ctx context.Context, doc *Document) error {
	return nil
}

func (n *NoopEventSink) ContentDeleted(ctx context.Context, id int64) error {
	return nil
}

// LoggingEventSink writes every mutation to a structured logger
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates an event sink backed by logger.
// A nil logger uses slog.Default().
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (l *LoggingEventSink) ContentCreated(ctx context.Context, content *Content) error {
	var id int64
	if content.ID != nil {
		id = *content.ID
	}
	l.logger.InfoContext(ctx, "Content created", "content_id", id, "url", content.URL, "delay", content.Delay)
	return nil
}

func (l *LoggingEventSink) ContentsReplaced(ctx context.Context, doc *Document) error {
	l.logger.InfoContext(ctx, "Contents replaced", "count", len(doc.Contents))
	return nil
}

func (l *LoggingEventSink) ContentDeleted(ctx context.Context, id int64) error {
	l.logger.InfoContext(ctx, "Content deleted", "content_id", id)
	return nil
}
