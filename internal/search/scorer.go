// Package search implements relevance scoring and criteria filtering over
// a product-collection snapshot and its inverted index.
package search

import (
	"sort"

	"github.com/shopassist/shop-assistant/index"
	"github.com/shopassist/shop-assistant/internal/tokenizer"
	"github.com/shopassist/shop-assistant/model"
)

// DefaultTopK bounds the result size when the caller does not supply one.
const DefaultTopK = 5

// Scorer ranks the records of one snapshot against free-text queries.
// It holds the snapshot's index and record collection and treats both as
// read-only, so one Scorer can serve concurrent queries without locking.
type Scorer struct {
	invertedIndex *index.InvertedIndex
	products      []model.Product
}

// NewScorer creates a Scorer over a record collection and the inverted
// index built from it. The index's postings must reference positions in
// this exact collection.
func NewScorer(invertedIndex *index.InvertedIndex, products []model.Product) *Scorer {
	return &Scorer{
		invertedIndex: invertedIndex,
		products:      products,
	}
}

// Search returns up to topK records ranked by accumulated query-token
// occurrence count. Query tokens are looked up unfiltered; tokens shorter
// than the build-time cutoff simply never hit. A record's score is the
// total number of matched occurrences, so a term repeated in one record
// counts once per occurrence.
//
// Selected records are shallow copies annotated with a relevance_score
// field. Ties keep the order in which records first accumulated a score.
// If no query token matches anything, the first topK records of the
// collection are returned as-is, without relevance_score; callers must
// handle the field's absence.
func (s *Scorer) Search(query string, topK int) []model.Product {
	if topK <= 0 {
		topK = DefaultTopK
	}

	scores := make(map[int]int)
	order := make([]int, 0)

	for _, token := range tokenizer.Tokenize(query) {
		for _, pos := range s.invertedIndex.Postings(token) {
			if _, seen := scores[pos]; !seen {
				order = append(order, pos)
			}
			scores[pos]++
		}
	}

	if len(order) == 0 {
		return s.fallback(topK)
	}

	// Stable sort by score only: records with equal scores keep their
	// first-encounter order from the accumulation pass above.
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if len(order) > topK {
		order = order[:topK]
	}

	results := make([]model.Product, 0, len(order))
	for _, pos := range order {
		annotated := s.products[pos].Copy()
		annotated[model.FieldRelevanceScore] = scores[pos]
		results = append(results, annotated)
	}
	return results
}

// MatchCount returns how many distinct records matched at least one token
// of the query.
func (s *Scorer) MatchCount(query string) int {
	matched := make(map[int]struct{})
	for _, token := range tokenizer.Tokenize(query) {
		for _, pos := range s.invertedIndex.Postings(token) {
			matched[pos] = struct{}{}
		}
	}
	return len(matched)
}

// fallback returns the head of the collection unannotated when nothing
// matched. An empty collection yields an empty slice, not an error.
func (s *Scorer) fallback(topK int) []model.Product {
	if topK > len(s.products) {
		topK = len(s.products)
	}
	results := make([]model.Product, 0, topK)
	results = append(results, s.products[:topK]...)
	return results
}
