// Package catalog maintains the in-memory snapshots of both remote
// collections. Each kind has one snapshot slot that is replaced wholesale
// on refresh; readers never observe a partial update.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/afariz/mediashelf/internal/domain"
)

// SnapshotStore mirrors fetched snapshots locally so the next session can
// paint before its first network round-trip. May be nil.
type SnapshotStore interface {
	GetSnapshot(kind domain.Kind) ([]domain.Item, bool)
	SaveSnapshot(kind domain.Kind, items []domain.Item) error
}

// Cache holds the last-fetched snapshot of each collection.
type Cache struct {
	repo   domain.CatalogRepository
	store  SnapshotStore
	logger *slog.Logger

	mu        sync.RWMutex
	snapshots map[domain.Kind][]domain.Item
}

// NewCache creates a collection cache. store may be nil to disable the
// warm-start mirror.
func NewCache(repo domain.CatalogRepository, store SnapshotStore, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		repo:      repo,
		store:     store,
		logger:    logger,
		snapshots: make(map[domain.Kind][]domain.Item),
	}
}

// WarmStart installs the locally mirrored snapshots, if any, so the UI has
// something to show while the first refresh is in flight. A network
// refresh always replaces the warm copy.
func (c *Cache) WarmStart() {
	if c.store == nil {
		return
	}
	for _, kind := range domain.AllKinds() {
		items, ok := c.store.GetSnapshot(kind)
		if !ok {
			continue
		}
		c.install(kind, items)
		c.logger.Debug("warm-started snapshot", "kind", kind.String(), "count", len(items))
	}
}

// Snapshot returns the current snapshot for a kind. The returned slice is
// the snapshot itself: it is never mutated after installation, only
// replaced.
func (c *Cache) Snapshot(kind domain.Kind) []domain.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshots[kind]
}

// Lookup finds an item by id in the current snapshot of a kind.
func (c *Cache) Lookup(kind domain.Kind, id string) (domain.Item, bool) {
	for _, item := range c.Snapshot(kind) {
		if item.ID == id {
			return item, true
		}
	}
	return domain.Item{}, false
}

// Refresh fetches the full collection of a kind and atomically replaces
// its snapshot. A failed fetch installs an empty snapshot rather than
// erroring: the caller always has something to render, and the degraded
// state is visible as an empty collection.
func (c *Cache) Refresh(ctx context.Context, kind domain.Kind) []domain.Item {
	items, err := c.repo.ListItems(ctx, kind)
	if err != nil {
		c.logger.Warn("collection fetch failed, degrading to empty snapshot",
			"kind", kind.String(), "error", err)
		items = []domain.Item{}
	}

	c.install(kind, items)

	if err == nil && c.store != nil {
		if serr := c.store.SaveSnapshot(kind, items); serr != nil {
			c.logger.Warn("failed to mirror snapshot", "kind", kind.String(), "error", serr)
		}
	}

	c.logger.Info("refreshed collection", "kind", kind.String(), "count", len(items))
	return items
}

// RefreshAll refreshes both collections concurrently and returns when both
// have settled. Each fetch mutates only its own kind's slot, so the two
// never contend beyond the slot swap itself.
func (c *Cache) RefreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, kind := range domain.AllKinds() {
		wg.Add(1)
		go func(k domain.Kind) {
			defer wg.Done()
			c.Refresh(ctx, k)
		}(kind)
	}
	wg.Wait()
}

func (c *Cache) install(kind domain.Kind, items []domain.Item) {
	c.mu.Lock()
	c.snapshots[kind] = items
	c.mu.Unlock()
}
