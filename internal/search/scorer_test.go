package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopassist/shop-assistant/internal/indexing"
	"github.com/shopassist/shop-assistant/model"
)

func testProducts() []model.Product {
	return []model.Product{
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
}

func newTestScorer(products []model.Product) *Scorer {
	return NewScorer(indexing.Build(products), products)
}

func TestSearchRanksMatchingRecordFirst(t *testing.T) {
	products := testProducts()
	scorer := newTestScorer(products)

	results := scorer.Search("cheap widget", 5)

	require.Len(t, results, 1) // "cheap" hits nothing, "widget" hits record 0
	name, _ := results[0].GetName()
	assert.Equal(t, "Widget", name)

	score, ok := results[0].GetRelevanceScore()
	require.True(t, ok)
	assert.Equal(t, 1, score)
}

func TestSearchScoreAccumulatesOccurrences(t *testing.T) {
	products := []model.Product{
		{"name": "Widget", "description": "widget widget widget"},
		{"name": "Widget stand", "description": "holds one gadget"},
	}
	scorer := newTestScorer(products)

	results := scorer.Search("widget gadget", 5)

	require.Len(t, results, 2)

	// Record 0 has four occurrences of "widget"; record 1 has one
	// "widget" and one "gadget". Occurrence count wins over distinct
	// token count.
	score0, _ := results[0].GetRelevanceScore()
	score1, _ := results[1].GetRelevanceScore()
	assert.Equal(t, 4, score0)
	assert.Equal(t, 2, score1)
	name, _ := results[0].GetName()
	assert.Equal(t, "Widget", name)
}

func TestSearchTieKeepsFirstEncounterOrder(t *testing.T) {
	products := []model.Product{
		{"name": "Alpha speaker"},
		{"name": "Beta speaker"},
		{"name": "Gamma speaker"},
	}
	scorer := newTestScorer(products)

	results := scorer.Search("speaker", 5)

	require.Len(t, results, 3)
	names := make([]string, 0, 3)
	for _, p := range results {
		name, _ := p.GetName()
		names = append(names, name)
	}
	assert.Equal(t, []string{"Alpha speaker", "Beta speaker", "Gamma speaker"}, names)
}

func TestSearchRespectsTopK(t *testing.T) {
	products := []model.Product{
		{"name": "Speaker one"},
		{"name": "Speaker two"},
		{"name": "Speaker three"},
	}
	scorer := newTestScorer(products)

	assert.Len(t, scorer.Search("speaker", 2), 2)
	assert.Len(t, scorer.Search("speaker", 10), 3)
}

func TestSearchDefaultTopK(t *testing.T) {
	products := make([]model.Product, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		products = append(products, model.Product{"name": "speaker " + name})
	}
	scorer := newTestScorer(products)

	assert.Len(t, scorer.Search("speaker", 0), DefaultTopK)
}

func TestSearchFallbackReturnsUnannotatedHead(t *testing.T) {
	products := testProducts()
	scorer := newTestScorer(products)

	results := scorer.Search("zzz unmatched query", 5)

	require.Len(t, results, 2)
	for _, product := range results {
		_, ok := product.GetRelevanceScore()
		assert.False(t, ok, "fallback records must not carry relevance_score")
	}
	name, _ := results[0].GetName()
	assert.Equal(t, "Widget", name)
}

func TestSearchEmptyCollection(t *testing.T) {
	scorer := newTestScorer(nil)

	results := scorer.Search("anything", 5)

	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchShortQueryTokensSimplyMiss(t *testing.T) {
	products := []model.Product{{"name": "Widget", "availability": "In Stock"}}
	scorer := newTestScorer(products)

	// "in" was never indexed (length cutoff), so lookups miss and the
	// fallback applies; query tokens themselves are not length-filtered.
	results := scorer.Search("in", 5)

	require.Len(t, results, 1)
	_, ok := results[0].GetRelevanceScore()
	assert.False(t, ok)
}

func TestSearchDoesNotMutateOriginals(t *testing.T) {
	products := testProducts()
	scorer := newTestScorer(products)

	results := scorer.Search("widget", 5)

	require.Len(t, results, 1)
	_, annotated := results[0].GetRelevanceScore()
	assert.True(t, annotated)
	_, original := products[0].GetRelevanceScore()
	assert.False(t, original, "originating record must never be mutated")
}

func TestMatchCount(t *testing.T) {
	products := testProducts()
	scorer := newTestScorer(products)

	assert.Equal(t, 1, scorer.MatchCount("widget"))
	assert.Equal(t, 2, scorer.MatchCount("stock"))
	assert.Equal(t, 0, scorer.MatchCount("zzz"))
}
