// Package imagecache persists fetched plant images on disk. Metadata lives
// in a bitcask store keyed by the hash of the source URL; image bytes are
// content-addressed under an objects directory by their blake3 digest.
package imagecache

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"git.mills.io/prologic/bitcask"
	log "github.com/sirupsen/logrus"
	"github.com/zeebo/blake3"
)

// ErrNotFound is returned when a URL has no cached entry.
var ErrNotFound = errors.New("image not cached")

// Entry is the metadata record stored per cached URL.
type Entry struct {
	URL         string    `json:"url"`
	Hash        string    `json:"hash"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Store is the on-disk image cache. Safe for concurrent use.
type Store struct {
	db         *bitcask.Bitcask
	objectsDir string

	mu        sync.RWMutex
	closeOnce sync.Once
	closeErr  error
}

// Open initializes the cache rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	objectsDir := filepath.Join(dir, "objects")
	if err := os.MkdirAll(objectsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create image cache directory %s: %w", objectsDir, err)
	}

	db, err := bitcask.Open(filepath.Join(dir, "meta"))
	if err != nil {
		return nil, fmt.Errorf("failed to open image cache metadata store: %w", err)
	}

	return &Store{db: db, objectsDir: objectsDir}, nil
}

// urlKey derives the fixed-size bitcask key for a URL. URLs can exceed the
// store's key size limit, so the key is the URL's digest.
func urlKey(url string) []byte {
	sum := blake3.Sum256([]byte(url))
	return []byte(hex.EncodeToString(sum[:]))
}

// objectPath fans content out into two-character subdirectories.
func (s *Store) objectPath(hash string) string {
	if len(hash) < 2 {
		return filepath.Join(s.objectsDir, hash)
	}
	return filepath.Join(s.objectsDir, hash[:2], hash)
}

// Put stores the image bytes fetched from url and records its metadata.
// Re-putting the same content is cheap; the object file is reused.
func (s *Store) Put(url, contentType string, data []byte) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := blake3.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	path := s.objectPath(hash)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return Entry{}, fmt.Errorf("failed to create object directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return Entry{}, fmt.Errorf("failed to write cached image: %w", err)
		}
	}

	entry := Entry{
		URL:         url,
		Hash:        hash,
		Size:        int64(len(data)),
		ContentType: contentType,
		FetchedAt:   time.Now().UTC(),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := s.db.Put(urlKey(url), raw); err != nil {
		return Entry{}, fmt.Errorf("failed to store cache entry: %w", err)
	}
	return entry, nil
}

// Get returns the metadata entry for url.
func (s *Store) Get(url string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := s.db.Get(urlKey(url))
	if err != nil {
		if errors.Is(err, bitcask.ErrKeyNotFound) {
			return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, url)
		}
		return Entry{}, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return entry, nil
}

// Has reports whether url is cached.
func (s *Store) Has(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Has(urlKey(url))
}

// ReadData returns the cached image bytes for url.
func (s *Store) ReadData(url string) ([]byte, error) {
	entry, err := s.Get(url)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.objectPath(entry.Hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: object missing for %s", ErrNotFound, url)
		}
		return nil, fmt.Errorf("failed to read cached image: %w", err)
	}
	return data, nil
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Len()
}

// TotalSize sums the recorded sizes of all cached entries.
func (s *Store) TotalSize() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	err := s.db.Fold(func(key []byte) error {
		raw, err := s.db.Get(key)
		if err != nil {
			return err
		}
		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			log.WithError(err).Warn("Skipping undecodable cache entry")
			return nil
		}
		total += entry.Size
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan cache entries: %w", err)
	}
	return total, nil
}

// Close flushes and closes the metadata store. Safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}
