package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gosuri/uilive"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-desert-guide/internal/catalog"
	"go-desert-guide/internal/fetcher"
	"go-desert-guide/internal/imagecache"
)

var prefetchConcurrencyFlag int

var prefetchCmd = &cobra.Command{
	Use:   "prefetch",
	Short: "Download every catalog image into the local cache",
	Long: `Walks the merged catalog and fetches every gallery image into the
on-disk image cache, so browsing works offline and the website serves warm.`,
	RunE: runPrefetch,
}

func init() {
	prefetchCmd.Flags().IntVarP(&prefetchConcurrencyFlag, "concurrency", "c", 0, "Number of concurrent downloads (overrides config)")
	rootCmd.AddCommand(prefetchCmd)
}

func runPrefetch(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("concurrency") {
		globalConfig.Prefetch.Concurrency = prefetchConcurrencyFlag
	}
	if globalConfig.Prefetch.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", globalConfig.Prefetch.Concurrency)
	}

	provider, err := newProvider()
	if err != nil {
		return err
	}

	cache, err := imagecache.Open(filepath.Join(globalConfig.CachePath, "images"))
	if err != nil {
		return fmt.Errorf("failed to open image cache: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.WithError(err).Error("Error closing image cache")
		}
	}()

	// Unique image URLs across the whole catalog, in catalog order.
	seen := make(map[string]struct{})
	var urls []string
	for _, rec := range provider.AllPlants(cmd.Context()) {
		for _, img := range catalog.ImageSet(rec) {
			if _, dup := seen[img.URL]; dup {
				continue
			}
			seen[img.URL] = struct{}{}
			urls = append(urls, img.URL)
		}
	}

	total := len(urls)
	if total == 0 {
		log.Info("No images to prefetch.")
		return nil
	}
	log.Infof("Prefetching %d images with %d workers", total, globalConfig.Prefetch.Concurrency)

	imageFetcher := fetcher.NewFetcher(newHTTPClient(), cache)

	writer := uilive.New()
	writer.Start()
	defer writer.Stop()

	var (
		wg        sync.WaitGroup
		done      int64
		failed    int64
		jobs      = make(chan string, total)
		writerMu  sync.Mutex
		updateBar = func() {
			writerMu.Lock()
			defer writerMu.Unlock()
			fmt.Fprintf(writer, "Prefetching images... %d/%d done, %d failed\n",
				atomic.LoadInt64(&done), total, atomic.LoadInt64(&failed))
		}
	)

	for i := 0; i < globalConfig.Prefetch.Concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for url := range jobs {
				if err := imageFetcher.FetchImage(cmd.Context(), url); err != nil {
					atomic.AddInt64(&failed, 1)
					log.WithError(err).Warnf("[worker %d] Failed to fetch %s", workerID, url)
				}
				atomic.AddInt64(&done, 1)
				updateBar()
			}
		}(i + 1)
	}

	for _, url := range urls {
		jobs <- url
	}
	close(jobs)
	wg.Wait()
	updateBar()

	if f := atomic.LoadInt64(&failed); f > 0 {
		log.Warnf("Prefetch finished with %d failures out of %d images", f, total)
	} else {
		log.Infof("Prefetch finished: %d images cached", total)
	}

	size, err := cache.TotalSize()
	if err == nil {
		log.Infof("Image cache now holds %d entries (%d bytes)", cache.Len(), size)
	}
	return nil
}
