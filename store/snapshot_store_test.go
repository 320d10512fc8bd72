package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopassist/shop-assistant/index"
	"github.com/shopassist/shop-assistant/model"
)

func TestNewSnapshotStoreStartsEmpty(t *testing.T) {
	s := NewSnapshotStore()

	snap := s.Current()
	require.NotNil(t, snap)
	assert.Empty(t, snap.Products)
	assert.Equal(t, 0, snap.Index.Terms())
	assert.Equal(t, 0, s.Len())
}

func TestReplaceBuildsIndex(t *testing.T) {
	s := NewSnapshotStore()

	s.Replace([]model.Product{
		{"name": "Widget", "availability": "In Stock"},
		{"name": "Gadget"},
	})

	snap := s.Current()
	assert.Len(t, snap.Products, 2)
	assert.Equal(t, index.PostingList{0}, snap.Index.Postings("widget"))
	assert.Equal(t, index.PostingList{1}, snap.Index.Postings("gadget"))
	assert.False(t, snap.ScrapedAt.IsZero())
}

func TestReplaceLeavesOldSnapshotIntact(t *testing.T) {
	s := NewSnapshotStore()
	s.Replace([]model.Product{{"name": "Widget"}})

	old := s.Current()
	s.Replace([]model.Product{{"name": "Gadget"}, {"name": "Sprocket"}})

	// A reader holding the previous snapshot still sees its state.
	assert.Len(t, old.Products, 1)
	assert.Equal(t, index.PostingList{0}, old.Index.Postings("widget"))
	assert.Nil(t, old.Index.Postings("gadget"))

	assert.Len(t, s.Current().Products, 2)
}

func TestReplaceAtKeepsTimestamp(t *testing.T) {
	s := NewSnapshotStore()
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	s.ReplaceAt([]model.Product{{"name": "Widget"}}, ts)

	assert.Equal(t, ts, s.Current().ScrapedAt)
}

func TestClear(t *testing.T) {
	s := NewSnapshotStore()
	s.Replace([]model.Product{{"name": "Widget"}})

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Current().Index.Terms())
	assert.NotNil(t, s.Products())
}
