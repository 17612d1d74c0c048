// Package fetcher downloads plant images into the local image cache.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-desert-guide/internal/imagecache"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrHttpStatus is returned for non-2xx responses.
	ErrHttpStatus = errors.New("unexpected HTTP status code")
	// ErrHttpRequest covers request construction and transport failures.
	ErrHttpRequest = errors.New("HTTP request creation/execution error")
	// ErrTooLarge is returned when a response body exceeds the size cap.
	ErrTooLarge = errors.New("image exceeds maximum cacheable size")
)

// maxImageSize caps how much of a response body is read into the cache.
const maxImageSize = 32 << 20 // 32 MiB

// Fetcher downloads image URLs and stores them in the cache. A URL already
// present in the cache is not fetched again.
type Fetcher struct {
	client *http.Client
	cache  *imagecache.Store
}

// NewFetcher creates a Fetcher writing into cache. A nil client gets a
// default with a generous timeout.
func NewFetcher(client *http.Client, cache *imagecache.Store) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Fetcher{client: client, cache: cache}
}

// FetchImage downloads url into the cache. Cached URLs are a no-op.
func (f *Fetcher) FetchImage(ctx context.Context, url string) error {
	if f.cache != nil && f.cache.Has(url) {
		log.Debugf("Image already cached, skipping fetch: %s", url)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: creating request for %s: %v", ErrHttpRequest, url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetching %s: %v", ErrHttpRequest, url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warnf("Failed to close response body for %s", url)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d fetching %s", ErrHttpStatus, resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return fmt.Errorf("%w: reading body of %s: %v", ErrHttpRequest, url, err)
	}
	if len(data) > maxImageSize {
		return fmt.Errorf("%w: %s", ErrTooLarge, url)
	}

	if f.cache == nil {
		// No cache configured: the fetch itself warmed whatever HTTP
		// caches sit between us and the CDN.
		return nil
	}

	entry, err := f.cache.Put(url, resp.Header.Get("Content-Type"), data)
	if err != nil {
		return fmt.Errorf("failed to cache %s: %w", url, err)
	}
	log.Debugf("Cached %s (%d bytes, hash %.12s)", url, entry.Size, entry.Hash)
	return nil
}
