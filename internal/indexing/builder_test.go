package indexing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopassist/shop-assistant/index"
	"github.com/shopassist/shop-assistant/model"
)

func TestBuild(t *testing.T) {
	products := []model.Product{
		{
			"name":         "Widget",
			"price":        "$10.00",
			"rating":       "4.5 out of 5",
			"availability": "In Stock",
		},
		{
			"name":         "Gadget",
			"price":        "$50.00",
			"rating":       "3.0 out of 5",
			"availability": "Out of Stock",
		},
	}

	ii := Build(products)

	t.Run("tokens map to the records containing them", func(t *testing.T) {
		assert.Equal(t, index.PostingList{0}, ii.Postings("widget"))
		assert.Equal(t, index.PostingList{1}, ii.Postings("gadget"))
		assert.Equal(t, index.PostingList{0, 1}, ii.Postings("stock"))
	})

	t.Run("short tokens are dropped", func(t *testing.T) {
		assert.Nil(t, ii.Postings("of"))
		assert.Nil(t, ii.Postings("in"))
		assert.Nil(t, ii.Postings("00"))
		assert.Nil(t, ii.Postings("10"))
	})

	t.Run("query-side casing does not matter at build time", func(t *testing.T) {
		// Everything is stored lowercase.
		assert.Nil(t, ii.Postings("Widget"))
	})
}

func TestBuildRepeatedTokensAppendPositionsPerOccurrence(t *testing.T) {
	products := []model.Product{
		{"name": "Deluxe Widget", "description": "The widget every widget fan needs"},
	}

	ii := Build(products)

	// Three occurrences of "widget" in record 0: one per occurrence.
	assert.Equal(t, index.PostingList{0, 0, 0}, ii.Postings("widget"))
}

func TestBuildSkipsAbsentFields(t *testing.T) {
	products := []model.Product{
		{"name": "Cable"}, // no price, rating, description or availability
		{},                // nothing at all
	}

	ii := Build(products)

	assert.Equal(t, index.PostingList{0}, ii.Postings("cable"))

	// Only record 0 contributed any tokens.
	for token, postings := range ii.Index {
		for _, pos := range postings {
			assert.Equal(t, 0, pos, "unexpected position for token %q", token)
		}
	}
}

func TestBuildEmptyCollection(t *testing.T) {
	ii := Build(nil)
	require.NotNil(t, ii)
	assert.Equal(t, 0, ii.Terms())
}

func TestBuildPositionsAlwaysInRange(t *testing.T) {
	products := []model.Product{
		{"name": "Alpha speaker", "description": "portable speaker"},
		{"name": "Beta headphones"},
		{"name": "Gamma speaker stand"},
	}

	ii := Build(products)

	for token, postings := range ii.Index {
		for _, pos := range postings {
			assert.GreaterOrEqual(t, pos, 0, "token %q", token)
			assert.Less(t, pos, len(products), "token %q", token)
		}
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	products := []model.Product{
		{"name": "Widget", "description": "A fine widget"},
		{"name": "Gadget", "description": "A finer gadget"},
	}

	first := Build(products)
	second := Build(products)

	assert.Equal(t, first.Index, second.Index)
}
