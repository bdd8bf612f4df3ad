package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/tv-content/pkg/tvcontent"
)

// newTestPool connects to TEST_DATABASE_URL or skips the test
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, pool.Ping(ctx), "Failed to ping test database")
	t.Cleanup(pool.Close)

	return pool
}

func TestPostgresStore(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	name := fmt.Sprintf("test-%d", time.Now().UnixNano())
	store := NewWithPool(pool, name)
	require.NoError(t, store.EnsureSchema(ctx))
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM content_document WHERE name = $1`, name)
	})

	_, err := store.Read(ctx)
	assert.ErrorIs(t, err, tvcontent.ErrDocumentNotFound)

	first := []byte(`{"contents":[{"id":1,"url":"http://a","delay":1,"caption":""}]}`)
	require.NoError(t, store.Write(ctx, first))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(got))

	second := []byte(`{"contents":[]}`)
	require.NoError(t, store.Write(ctx, second))

	got, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(second), string(got))
}

func TestPostgresStoreRejectsInvalidJSON(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	store := NewWithPool(pool, fmt.Sprintf("invalid-%d", time.Now().UnixNano()))
	require.NoError(t, store.EnsureSchema(ctx))

	err := store.Write(ctx, []byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error in write")
}

func TestNewDefaultsDocumentName(t *testing.T) {
	store := New(nil, "")
	assert.Equal(t, DefaultDocumentName, store.name)
}
