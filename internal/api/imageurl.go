package api

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnresolvableRef is returned when an image reference carries neither a
// pre-resolved URL nor a parseable asset key. Callers drop the entry rather
// than failing the whole record.
var ErrUnresolvableRef = errors.New("image reference cannot be resolved to a URL")

// Asset keys look like "image-<id>-<width>x<height>-<format>", e.g.
// "image-a1b2c3d4-1200x800-webp".
var assetKeyRegex = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+)x(\d+)-([a-z0-9]+)$`)

// URLBuilder resolves opaque content store asset keys to CDN URLs.
type URLBuilder struct {
	cdnBaseURL string
}

// NewURLBuilder creates a URLBuilder. An empty CDN base URL is allowed;
// in that case only pre-resolved references can be used.
func NewURLBuilder(cdnBaseURL string) *URLBuilder {
	return &URLBuilder{cdnBaseURL: cdnBaseURL}
}

// Resolve turns an image reference into a concrete URL. A pre-resolved URL
// on the reference always wins; otherwise the asset key is parsed and a CDN
// URL is built from it.
func (b *URLBuilder) Resolve(key, preResolved string) (string, error) {
	if preResolved != "" {
		return preResolved, nil
	}
	if b.cdnBaseURL == "" {
		return "", fmt.Errorf("%w: no CDN base URL and no pre-resolved URL for key %q", ErrUnresolvableRef, key)
	}

	m := assetKeyRegex.FindStringSubmatch(key)
	if m == nil {
		return "", fmt.Errorf("%w: malformed asset key %q", ErrUnresolvableRef, key)
	}
	id, width, height, format := m[1], m[2], m[3], m[4]
	return fmt.Sprintf("%s/images/%s-%sx%s.%s", b.cdnBaseURL, id, width, height, format), nil
}
