package store

import (
	"sync"
	"time"

	"github.com/shopassist/shop-assistant/index"
	"github.com/shopassist/shop-assistant/internal/indexing"
	"github.com/shopassist/shop-assistant/model"
)

// Snapshot is one immutable record-collection state: the products in
// scrape order plus the inverted index derived from them. Once published
// a snapshot is never mutated, so any number of readers can score and
// filter against it without locking.
type Snapshot struct {
	Products  []model.Product
	Index     *index.InvertedIndex
	ScrapedAt time.Time
}

// SnapshotStore holds the current snapshot and swaps it wholesale when
// the record collection changes (copy-on-write): a replacement snapshot
// is fully built before the pointer readers use is swapped under a short
// write lock. There is no incremental index update.
type SnapshotStore struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewSnapshotStore creates a store holding an empty snapshot.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		current: &Snapshot{
			Products: []model.Product{},
			Index:    index.New(),
		},
	}
}

// Current returns the current snapshot. Callers may hold on to it for as
// long as they like; a concurrent Replace never invalidates it.
func (s *SnapshotStore) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace builds a fresh snapshot (index included) from the given
// products and swaps it in. The index build happens outside the lock.
func (s *SnapshotStore) Replace(products []model.Product) {
	s.ReplaceAt(products, time.Now().UTC())
}

// ReplaceAt is Replace with an explicit scrape timestamp, used when
// restoring a persisted snapshot.
func (s *SnapshotStore) ReplaceAt(products []model.Product, scrapedAt time.Time) {
	if products == nil {
		products = []model.Product{}
	}
	snapshot := &Snapshot{
		Products:  products,
		Index:     indexing.Build(products),
		ScrapedAt: scrapedAt,
	}

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()
}

// Clear swaps in an empty snapshot.
func (s *SnapshotStore) Clear() {
	s.Replace(nil)
}

// Products returns the current snapshot's record collection.
func (s *SnapshotStore) Products() []model.Product {
	return s.Current().Products
}

// Len returns the current snapshot's record count.
func (s *SnapshotStore) Len() int {
	return len(s.Current().Products)
}
