package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryHistoryNewestFirst(t *testing.T) {
	history := NewQueryHistory(10)

	history.Add(HistoryEntry{Query: "first", AskedAt: time.Now()})
	history.Add(HistoryEntry{Query: "second", AskedAt: time.Now()})

	entries := history.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Query)
	assert.Equal(t, "first", entries[1].Query)
}

func TestQueryHistoryEvictsOldest(t *testing.T) {
	history := NewQueryHistory(3)

	for i := 0; i < 5; i++ {
		history.Add(HistoryEntry{Query: fmt.Sprintf("query %d", i)})
	}

	entries := history.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "query 4", entries[0].Query)
	assert.Equal(t, "query 2", entries[2].Query)
}

func TestQueryHistoryClear(t *testing.T) {
	history := NewQueryHistory(10)
	history.Add(HistoryEntry{Query: "anything"})

	history.Clear()

	assert.Equal(t, 0, history.Len())
	assert.Empty(t, history.Entries())
}

func TestQueryHistoryDefaultCapacity(t *testing.T) {
	history := NewQueryHistory(0)

	for i := 0; i < 60; i++ {
		history.Add(HistoryEntry{Query: fmt.Sprintf("query %d", i)})
	}

	assert.Equal(t, 50, history.Len())
}

func TestQueryHistoryEntriesIsACopy(t *testing.T) {
	history := NewQueryHistory(10)
	history.Add(HistoryEntry{Query: "stable"})

	entries := history.Entries()
	entries[0].Query = "mutated"

	assert.Equal(t, "stable", history.Entries()[0].Query)
}
