package provider

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/pawdeck/internal/logging"
	"github.com/abelbrown/pawdeck/internal/session"
)

// cacheWriter parks fetched bytes for the session's lifetime.
type cacheWriter interface {
	Put(gen uint64, slot int, ref string, data []byte) error
}

// BatchFetcher assembles a full batch of items from independent image
// fetches. Assembly is all-or-nothing on completion but per-slot on
// failure: a slot whose fetch fails gets the fallback reference, so
// the batch always comes back with exactly Size items.
type BatchFetcher struct {
	provider    ImageProvider
	cache       cacheWriter
	fallbackURL string
	size        int
	concurrency int
}

// NewBatchFetcher creates a BatchFetcher producing batches of size
// items, fetching at most concurrency slots in parallel.
func NewBatchFetcher(p ImageProvider, cache cacheWriter, fallbackURL string, size, concurrency int) *BatchFetcher {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchFetcher{
		provider:    p,
		cache:       cache,
		fallbackURL: fallbackURL,
		size:        size,
		concurrency: concurrency,
	}
}

// Fetch retrieves all slots for one batch generation. It never fails:
// provider errors degrade the affected slot to the fallback reference
// and are logged, not propagated. The returned batch is ordered by
// slot and has exactly Size items.
func (b *BatchFetcher) Fetch(ctx context.Context, gen uint64) session.Batch {
	batch := make(session.Batch, b.size)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for slot := 0; slot < b.size; slot++ {
		g.Go(func() error {
			img, err := b.provider.FetchImage(ctx)
			if err != nil {
				logging.Warn("image fetch failed, using fallback", "generation", gen, "slot", slot, "error", err)
				batch[slot] = session.Item{
					ID:       slot,
					ImageRef: b.fallbackURL,
					Source:   session.SourceFallback,
				}
				return nil
			}

			if b.cache != nil {
				if err := b.cache.Put(gen, slot, img.Ref, img.Data); err != nil {
					logging.Warn("failed to cache image", "generation", gen, "slot", slot, "error", err)
				}
			}
			batch[slot] = session.Item{
				ID:       slot,
				ImageRef: img.Ref,
				Source:   session.SourceFetched,
			}
			return nil
		})
	}

	// Slot errors are absorbed above; Wait only joins the goroutines.
	g.Wait()

	return batch
}
