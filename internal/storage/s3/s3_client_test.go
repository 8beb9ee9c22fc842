package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carte/internal/config"
	"carte/internal/domain"
)

// fakeBucket serves path-style object requests for one bucket.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/menus/")
	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		b.objects[key] = data
		b.types[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag-1"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := b.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", b.types[key])
		_, _ = w.Write(data)
	case http.MethodDelete:
		delete(b.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestArchive(t *testing.T) (*fakeBucket, *imageArchive) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	archive, err := NewImageArchive(&config.S3Config{
		Region:    "us-east-1",
		Bucket:    "menus",
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return bucket, archive.(*imageArchive)
}

func TestImageArchive_PutGetDelete(t *testing.T) {
	bucket, archive := newTestArchive(t)
	ctx := context.Background()

	img := domain.ImagePayload{MediaType: domain.MediaTypePNG, Data: []byte("\x89PNG\r\n\x1a\npixels")}
	obj, err := archive.Put(ctx, "scans/1/page-1.png", img)
	require.NoError(t, err)
	assert.Equal(t, "scans/1/page-1.png", obj.Key)
	assert.Equal(t, img.Data, bucket.objects["scans/1/page-1.png"])

	got, err := archive.Get(ctx, "scans/1/page-1.png")
	require.NoError(t, err)
	assert.Equal(t, img.Data, got.Data)
	assert.Equal(t, domain.MediaTypePNG, got.MediaType)

	require.NoError(t, archive.Delete(ctx, "scans/1/page-1.png"))
	assert.Empty(t, bucket.objects)
}

func TestImageArchive_GetMissing(t *testing.T) {
	_, archive := newTestArchive(t)

	_, err := archive.Get(context.Background(), "scans/none/page-1.jpg")
	assert.ErrorIs(t, err, domain.ErrScanNotFound)
}

func TestImageArchive_PresignGet(t *testing.T) {
	_, archive := newTestArchive(t)

	url, err := archive.PresignGet(context.Background(), "scans/1/page-1.jpg", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "/menus/scans/1/page-1.jpg")
	assert.Contains(t, url, "X-Amz-Expires=900")
	assert.Contains(t, url, "X-Amz-Signature=")
}
