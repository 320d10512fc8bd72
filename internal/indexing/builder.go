// Package indexing builds the inverted index for a product-collection
// snapshot. Building is a pure function of the collection: the same
// records in the same order always produce identical postings lists.
package indexing

import (
	"strings"

	"github.com/shopassist/shop-assistant/index"
	"github.com/shopassist/shop-assistant/internal/tokenizer"
	"github.com/shopassist/shop-assistant/model"
)

// minTokenLength drops very short tokens at build time. Short words are
// almost always noise ("a", "of", "in"); there is no stop-word list
// beyond this cutoff.
const minTokenLength = 3

// Build constructs an inverted index over the given record collection.
// For each record the five recognized text fields are concatenated
// (absent fields skipped), tokenized, and every token of at least
// minTokenLength characters gets the record's position appended to its
// postings list. A token repeated within one record appends the position
// once per occurrence, so repeated mentions count as a stronger signal
// during scoring.
//
// Build never mutates the input records. An empty collection yields an
// empty index.
func Build(products []model.Product) *index.InvertedIndex {
	ii := index.New()

	for i, product := range products {
		combined := combineTextFields(product)
		if combined == "" {
			continue
		}

		for _, token := range tokenizer.Tokenize(combined) {
			if len(token) < minTokenLength {
				continue
			}
			ii.Index[token] = append(ii.Index[token], i)
		}
	}

	return ii
}

// indexedFields is the concatenation order for building the combined
// text of one record. Postings hold record positions, not text offsets,
// so the order has no effect on the index; it is fixed for determinism.
var indexedFields = []string{
	model.FieldName,
	model.FieldDescription,
	model.FieldPrice,
	model.FieldRating,
	model.FieldAvailability,
}

// combineTextFields joins the present text fields of a record with
// single spaces.
func combineTextFields(product model.Product) string {
	parts := make([]string, 0, len(indexedFields))
	for _, field := range indexedFields {
		if text, ok := product.GetField(field); ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
