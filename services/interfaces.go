package services

import (
	"context"

	"github.com/shopassist/shop-assistant/model"
)

// Criteria is a set of optional bounds used to admit or reject product
// records. A nil field means "no constraint on that dimension".
type Criteria struct {
	MinPrice      *float64 `json:"min_price,omitempty"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
	MinRating     *float64 `json:"min_rating,omitempty"`
	AvailableOnly *bool    `json:"available_only,omitempty"`
}

// IsZero reports whether no dimension is constrained.
func (c Criteria) IsZero() bool {
	return c.MinPrice == nil && c.MaxPrice == nil && c.MinRating == nil && c.AvailableOnly == nil
}

// Merge returns a Criteria where every dimension set in c wins over the
// corresponding dimension of fallback. Used to let explicit caller
// criteria override intent-derived ones per dimension.
func (c Criteria) Merge(fallback Criteria) Criteria {
	merged := c
	if merged.MinPrice == nil {
		merged.MinPrice = fallback.MinPrice
	}
	if merged.MaxPrice == nil {
		merged.MaxPrice = fallback.MaxPrice
	}
	if merged.MinRating == nil {
		merged.MinRating = fallback.MinRating
	}
	if merged.AvailableOnly == nil {
		merged.AvailableOnly = fallback.AvailableOnly
	}
	return merged
}

// SortOrder is a heuristically derived result ordering.
type SortOrder string

const (
	SortNone       SortOrder = ""
	SortPriceAsc   SortOrder = "price_asc"
	SortPriceDesc  SortOrder = "price_desc"
	SortRatingAsc  SortOrder = "rating_asc"
	SortRatingDesc SortOrder = "rating_desc"
)

// Intent is a Criteria-shaped object extracted from free-text query
// phrasing. It is advisory: derived heuristically and never authoritative.
type Intent struct {
	SortBy        SortOrder `json:"sort_by,omitempty"`
	MinPrice      *float64  `json:"min_price,omitempty"`
	MaxPrice      *float64  `json:"max_price,omitempty"`
	AvailableOnly bool      `json:"available_only,omitempty"`
}

// Criteria converts the intent's filterable dimensions into a Criteria
// object the filter can consume. SortBy is not a filter dimension and is
// applied separately by the retrieval pipeline.
func (in Intent) Criteria() Criteria {
	criteria := Criteria{
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	}
	if in.AvailableOnly {
		avail := true
		criteria.AvailableOnly = &avail
	}
	return criteria
}

// IsZero reports whether the analyzer extracted nothing from the query.
func (in Intent) IsZero() bool {
	return in.SortBy == SortNone && in.MinPrice == nil && in.MaxPrice == nil && !in.AvailableOnly
}

// RetrievalRequest carries one free-text query against the current
// product snapshot.
type RetrievalRequest struct {
	Query    string   `json:"query"`
	TopK     int      `json:"top_k,omitempty"`
	Criteria Criteria `json:"criteria,omitempty"`
}

// RetrievalResult is the ranked, filtered subset of the snapshot for one
// query. Products carry a relevance_score field when at least one query
// token matched; fallback results are unannotated.
type RetrievalResult struct {
	Products []model.Product `json:"products"`
	Intent   Intent          `json:"intent"`
	Matched  int             `json:"matched"` // records with at least one token match
	Total    int             `json:"total"`   // snapshot size before filtering
	QueryID  string          `json:"query_id"`
	Took     int64           `json:"took"` // milliseconds
}

// Retriever turns a query into a ranked, filtered subset of the current
// snapshot.
type Retriever interface {
	Retrieve(req RetrievalRequest) (RetrievalResult, error)
}

// Answerer produces a natural-language answer grounded in a formatted
// product context.
type Answerer interface {
	Answer(ctx context.Context, productContext, userQuery string) (string, error)
}

// Producer supplies product records from an external source (a listing
// page). The core makes no assumption about how records are obtained.
type Producer interface {
	Scrape(ctx context.Context, url string, maxProducts int) ([]model.Product, error)
}

// SnapshotAccessor exposes the current immutable record-collection
// snapshot and replaces it wholesale.
type SnapshotAccessor interface {
	Products() []model.Product
	Replace(products []model.Product)
	Clear()
}
