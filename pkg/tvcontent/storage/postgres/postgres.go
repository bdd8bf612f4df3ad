package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/tv-content/pkg/tvcontent"
)

// DefaultDocumentName is the row key used when none is configured
const DefaultDocumentName = "contents"

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store keeps the content document in a single row of content_document.
// The column type is json so the stored text is returned unchanged.
type Store struct {
	db   DBTX
	name string
}

// New creates a new Postgres store for the document called name
func New(db DBTX, name string) *Store {
	if name == "" {
		name = DefaultDocumentName
	}
	return &Store{db: db, name: name}
}

// NewWithPool creates a new Postgres store with connection pool
func NewWithPool(pool *pgxpool.Pool, name string) *Store {
	return New(pool, name)
}

// EnsureSchema creates the document table if it is missing
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS content_document (
			name VARCHAR(255) PRIMARY KEY,
			body JSON NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
		)`)
	if err != nil {
		return s.handlePostgresError("ensure schema", err)
	}
	return nil
}

// Read loads the document row
func (s *Store) Read(ctx context.Context) ([]byte, error) {
	var body string
	err := s.db.QueryRow(ctx,
		`SELECT body::text FROM content_document WHERE name = $1`, s.name,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", tvcontent.ErrDocumentNotFound, s.name)
	}
	if err != nil {
		return nil, s.handlePostgresError("read", err)
	}
	return []byte(body), nil
}

// Write upserts the document row
func (s *Store) Write(ctx context.Context, data []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO content_document (name, body, updated_at)
		VALUES ($1, $2::json, now() AT TIME ZONE 'utc')
		ON CONFLICT (name) DO UPDATE
		SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		s.name, string(data),
	)
	if err != nil {
		return s.handlePostgresError("write", err)
	}
	return nil
}

func (s *Store) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("table content_document does not exist - run EnsureSchema")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

var _ tvcontent.DocumentStore = (*Store)(nil)
