package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/tv-content/pkg/tvcontent"
)

// fakeS3 is a minimal path-style S3 endpoint holding objects in memory
type fakeS3 struct {
	mu       sync.Mutex
	buckets  map[string]bool
	objects  map[string][]byte
	denyPuts bool
}

func newFakeS3(buckets ...string) *fakeS3 {
	f := &fakeS3{
		buckets: make(map[string]bool),
		objects: make(map[string][]byte),
	}
	for _, b := range buckets {
		f.buckets[b] = true
	}
	return f
}

func (f *fakeS3) object(path string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[path]
}

func (f *fakeS3) hasBucket(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[name]
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(path, "/")

	if key == "" {
		switch r.Method {
		case http.MethodHead:
			if !f.buckets[bucket] {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			f.buckets[bucket] = true
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		if f.denyPuts {
			writeS3Error(w, http.StatusForbidden, "AccessDenied", "Access Denied")
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if strings.Contains(r.Header.Get("Content-Encoding"), "aws-chunked") {
			body = decodeAWSChunked(body)
		}
		f.objects[path] = body
		w.Header().Set("ETag", `"fake-etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := f.objects[path]
		if !ok {
			writeS3Error(w, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeS3Error(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message><RequestId>fake</RequestId></Error>`, code, message)
}

// decodeAWSChunked strips the aws-chunked framing used for streamed checksums
func decodeAWSChunked(body []byte) []byte {
	var out []byte
	for {
		i := bytes.Index(body, []byte("\r\n"))
		if i < 0 {
			return out
		}
		sizeField, _, _ := strings.Cut(string(body[:i]), ";")
		size, err := strconv.ParseInt(strings.TrimSpace(sizeField), 16, 64)
		if err != nil || size == 0 {
			return out
		}
		body = body[i+2:]
		out = append(out, body[:size]...)
		body = bytes.TrimPrefix(body[size:], []byte("\r\n"))
	}
}

func newTestStore(t *testing.T, fake *fakeS3, config Config) *Store {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	config.Endpoint = server.URL
	config.UsePathStyle = true
	config.AccessKeyID = "test-key"
	config.SecretAccessKey = "test-secret"

	store, err := New(config)
	require.NoError(t, err)
	return store
}

func TestS3Store_BasicConfiguration(t *testing.T) {
	t.Run("EmptyBucket", func(t *testing.T) {
		_, err := New(Config{Region: "us-east-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket name is required")
	})

	t.Run("Defaults", func(t *testing.T) {
		store, err := New(Config{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		})
		require.NoError(t, err)
		assert.Equal(t, "us-east-1", store.config.Region)
		assert.Equal(t, DefaultKey, store.key)
	})
}

func TestS3Store_ReadWrite(t *testing.T) {
	fake := newFakeS3("content-bucket")
	store := newTestStore(t, fake, Config{Bucket: "content-bucket", Key: "board/contents.json"})
	ctx := context.Background()

	_, err := store.Read(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, tvcontent.ErrDocumentNotFound)

	doc := []byte(`{"contents":[{"id":1,"url":"http://a","delay":1,"caption":""}]}`)
	require.NoError(t, store.Write(ctx, doc))
	assert.Equal(t, doc, fake.object("content-bucket/board/contents.json"))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestS3Store_WriteFailure(t *testing.T) {
	fake := newFakeS3("content-bucket")
	fake.denyPuts = true
	store := newTestStore(t, fake, Config{Bucket: "content-bucket"})

	err := store.Write(context.Background(), []byte(`{"contents":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload to S3")
}

func TestS3Store_CreateBucketIfNotExist(t *testing.T) {
	fake := newFakeS3()
	newTestStore(t, fake, Config{Bucket: "fresh-bucket", CreateBucketIfNotExist: true})
	assert.True(t, fake.hasBucket("fresh-bucket"))
}
