// Package retrieval composes the intent analyzer, criteria filter and
// relevance scorer into the single typed pipeline the rest of the
// application calls: query text + snapshot -> ranked, filtered subset.
// Intent-derived criteria are applied to the filter automatically;
// explicit caller criteria override them per dimension.
package retrieval

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopassist/shop-assistant/internal/indexing"
	"github.com/shopassist/shop-assistant/internal/intent"
	"github.com/shopassist/shop-assistant/internal/metrics"
	"github.com/shopassist/shop-assistant/internal/search"
	"github.com/shopassist/shop-assistant/services"
	"github.com/shopassist/shop-assistant/store"
)

// Service runs retrieval queries against the current snapshot.
// It implements services.Retriever.
type Service struct {
	snapshots *store.SnapshotStore
	logger    *zap.Logger
}

// NewService creates a retrieval Service.
func NewService(snapshots *store.SnapshotStore, logger *zap.Logger) *Service {
	return &Service{
		snapshots: snapshots,
		logger:    logger,
	}
}

// Retrieve runs the pipeline: analyze intent, merge criteria, filter the
// snapshot, score the surviving records and apply any intent-derived sort
// to the selection. When no dimension is constrained the snapshot's
// cached index is reused; otherwise a fresh index is built over the
// filtered subset so postings stay valid positions into the collection
// being scored.
func (s *Service) Retrieve(req services.RetrievalRequest) (services.RetrievalResult, error) {
	start := time.Now()

	snapshot := s.snapshots.Current()
	queryIntent := intent.Analyze(req.Query)
	criteria := req.Criteria.Merge(queryIntent.Criteria())

	var scorer *search.Scorer
	if criteria.IsZero() {
		scorer = search.NewScorer(snapshot.Index, snapshot.Products)
	} else {
		filtered := search.Filter(snapshot.Products, criteria)
		scorer = search.NewScorer(indexing.Build(filtered), filtered)
	}

	selected := scorer.Search(req.Query, req.TopK)
	applySort(selected, queryIntent.SortBy)

	matched := scorer.MatchCount(req.Query)
	took := time.Since(start)

	outcome := "matched"
	if matched == 0 {
		outcome = "fallback"
	}
	metrics.RetrievalsTotal.WithLabelValues(outcome).Inc()
	metrics.RetrievalDuration.Observe(took.Seconds())

	s.logger.Debug("retrieval completed",
		zap.String("query", req.Query),
		zap.Int("matched", matched),
		zap.Int("returned", len(selected)),
		zap.Duration("took", took),
	)

	return services.RetrievalResult{
		Products: selected,
		Intent:   queryIntent,
		Matched:  matched,
		Total:    len(snapshot.Products),
		QueryID:  uuid.NewString(),
		Took:     took.Milliseconds(),
	}, nil
}
