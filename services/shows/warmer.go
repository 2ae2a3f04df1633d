package shows

import (
	"context"
	"log"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// WarmCatalogue prefetches the first pages of the upstream catalogue with
// bounded concurrency so early window and filter requests hit a warm cache.
// Warming is best effort: failures are logged and skipped, and pages past
// the catalogue end simply cache their empty payloads.
func (s *Service) WarmCatalogue(ctx context.Context, pages, workers int) {
	if pages <= 0 {
		return
	}
	if workers <= 0 {
		workers = 4
	}

	start := time.Now()
	p := pool.New().WithMaxGoroutines(workers)
	for page := 0; page < pages; page++ {
		page := page // per-iteration copy: go.mod targets 1.21, which shares the loop variable
		p.Go(func() {
			if _, err := s.ShowsPage(ctx, page); err != nil {
				log.Printf("[shows] cache warm page=%d failed: %v", page, err)
			}
		})
	}
	p.Wait()
	log.Printf("[shows] cache warm complete pages=%d in %s", pages, time.Since(start).Round(time.Millisecond))
}
