package retrieval

import (
	"sort"

	"github.com/shopassist/shop-assistant/internal/search"
	"github.com/shopassist/shop-assistant/model"
	"github.com/shopassist/shop-assistant/services"
)

// applySort reorders the selected records in place by the intent-derived
// sort key. Records whose key is absent or unparseable sort after all
// parseable ones; relative order within each group is preserved.
func applySort(products []model.Product, sortBy services.SortOrder) {
	if sortBy == services.SortNone {
		return
	}

	var field string
	var extract func(string) (float64, bool)
	var ascending bool

	switch sortBy {
	case services.SortPriceAsc:
		field, extract, ascending = model.FieldPrice, search.ExtractPrice, true
	case services.SortPriceDesc:
		field, extract, ascending = model.FieldPrice, search.ExtractPrice, false
	case services.SortRatingAsc:
		field, extract, ascending = model.FieldRating, search.ExtractRating, true
	case services.SortRatingDesc:
		field, extract, ascending = model.FieldRating, search.ExtractRating, false
	default:
		return
	}

	key := func(p model.Product) (float64, bool) {
		text, _ := p.GetField(field)
		return extract(text)
	}

	sort.SliceStable(products, func(i, j int) bool {
		vi, oki := key(products[i])
		vj, okj := key(products[j])
		if oki && okj {
			if ascending {
				return vi < vj
			}
			return vi > vj
		}
		return oki && !okj
	})
}
