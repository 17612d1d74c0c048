package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go-desert-guide/internal/imagecache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *imagecache.Store {
	t.Helper()
	cache, err := imagecache.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestFetchImageStoresInCache(t *testing.T) {
	body := []byte("jpeg bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	cache := openTestCache(t)
	f := NewFetcher(srv.Client(), cache)

	url := srv.URL + "/plants/saguaro.jpg"
	require.NoError(t, f.FetchImage(context.Background(), url))

	entry, err := cache.Get(url)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", entry.ContentType)

	data, err := cache.ReadData(url)
	require.NoError(t, err)
	assert.Equal(t, body, data)
}

func TestFetchImageSkipsCachedURL(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	cache := openTestCache(t)
	f := NewFetcher(srv.Client(), cache)

	url := srv.URL + "/a.jpg"
	require.NoError(t, f.FetchImage(context.Background(), url))
	require.NoError(t, f.FetchImage(context.Background(), url))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchImageHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cache := openTestCache(t)
	f := NewFetcher(srv.Client(), cache)

	err := f.FetchImage(context.Background(), srv.URL+"/a.jpg")
	require.ErrorIs(t, err, ErrHttpStatus)
	assert.False(t, cache.Has(srv.URL+"/a.jpg"))
}

func TestFetchImageWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), nil)
	assert.NoError(t, f.FetchImage(context.Background(), srv.URL+"/a.jpg"))
}

func TestFetchImageBadURL(t *testing.T) {
	f := NewFetcher(nil, nil)
	err := f.FetchImage(context.Background(), "://not-a-url")
	require.ErrorIs(t, err, ErrHttpRequest)
}
