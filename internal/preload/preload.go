// Package preload eagerly requests images adjacent to the active lightbox
// index so navigation feels instant.
package preload

import (
	"context"
	"sync"

	"go-desert-guide/internal/models"

	log "github.com/sirupsen/logrus"
)

// Fetcher requests a single image URL. The preloader only cares that the
// bytes end up somewhere warm (an HTTP cache, the local image cache).
type Fetcher interface {
	FetchImage(ctx context.Context, url string) error
}

// Scheduler dispatches fire-and-forget fetches for the current, next and
// previous images. Each unique URL is fetched at most once per Scheduler
// lifetime; failures are logged and swallowed.
type Scheduler struct {
	fetcher Fetcher

	mu   sync.Mutex
	seen map[string]struct{}
	wg   sync.WaitGroup
}

// NewScheduler creates a Scheduler over the given fetcher.
func NewScheduler(fetcher Fetcher) *Scheduler {
	return &Scheduler{
		fetcher: fetcher,
		seen:    make(map[string]struct{}),
	}
}

// ScheduleAround schedules fetches for images[index] and its immediate
// neighbors. Out-of-range neighbors are skipped. Dispatch is asynchronous;
// the call returns immediately.
func (s *Scheduler) ScheduleAround(ctx context.Context, images []models.GalleryImage, index int) {
	if s == nil || s.fetcher == nil || len(images) == 0 {
		return
	}
	if index < 0 || index >= len(images) {
		return
	}

	for _, i := range []int{index, index + 1, index - 1} {
		if i < 0 || i >= len(images) {
			continue
		}
		s.schedule(ctx, images[i].URL)
	}
}

func (s *Scheduler) schedule(ctx context.Context, url string) {
	if url == "" {
		return
	}

	s.mu.Lock()
	if _, dup := s.seen[url]; dup {
		s.mu.Unlock()
		return
	}
	s.seen[url] = struct{}{}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.fetcher.FetchImage(ctx, url); err != nil {
			log.WithError(err).Debugf("Preload failed for %s", url)
		}
	}()
}

// Wait blocks until all dispatched fetches have finished. Used on shutdown
// and in tests; normal navigation never waits.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
