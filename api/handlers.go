package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shopassist/shop-assistant/internal/llm"
	"github.com/shopassist/shop-assistant/internal/metrics"
	"github.com/shopassist/shop-assistant/internal/persistence"
	"github.com/shopassist/shop-assistant/model"
	"github.com/shopassist/shop-assistant/services"
	"github.com/shopassist/shop-assistant/store"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// API holds dependencies for API handlers: the snapshot store, the
// retrieval pipeline, the scraper, and the optional answer backend.
type API struct {
	snapshots    *store.SnapshotStore
	history      *store.QueryHistory
	retriever    services.Retriever
	producer     services.Producer
	answerer     services.Answerer // nil when no backend is configured
	snapshotPath string
	maxProducts  int
	defaultTopK  int
	logger       *zap.Logger
}

// Deps bundles the collaborators an API needs. Answerer may be nil; the
// /ask route then responds 503.
type Deps struct {
	Snapshots    *store.SnapshotStore
	Retriever    services.Retriever
	Producer     services.Producer
	Answerer     services.Answerer
	SnapshotPath string
	MaxProducts  int
	DefaultTopK  int
	Logger       *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(deps Deps) *API {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		snapshots:    deps.Snapshots,
		history:      store.NewQueryHistory(0),
		retriever:    deps.Retriever,
		producer:     deps.Producer,
		answerer:     deps.Answerer,
		snapshotPath: deps.SnapshotPath,
		maxProducts:  deps.MaxProducts,
		defaultTopK:  deps.DefaultTopK,
		logger:       logger,
	}
}

// SetupRoutes defines all the API routes for the shopping assistant.
func SetupRoutes(router *gin.Engine, deps Deps) {
	apiHandler := NewAPI(deps)

	router.Use(CORSMiddleware())

	// Health and observability routes
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Product snapshot routes
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", apiHandler.GetProductsHandler)      // Current snapshot as a JSON envelope
		productRoutes.DELETE("", apiHandler.ClearProductsHandler) // Clear snapshot, history and saved file
		productRoutes.POST("/load", apiHandler.LoadProductsHandler)
	}

	// Scrape and query routes take request bodies, so cap their size
	limited := router.Group("", RequestSizeLimitMiddleware(maxRequestBodySize))
	{
		limited.POST("/scrape", apiHandler.ScrapeHandler)
		limited.POST("/retrieve", apiHandler.RetrieveHandler)
		limited.POST("/ask", apiHandler.AskHandler)
	}

	router.GET("/history", apiHandler.HistoryHandler)
}

// HealthCheckHandler provides a health check endpoint.
func (api *API) HealthCheckHandler(c *gin.Context) {
	snapshot := api.snapshots.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"total_products": len(snapshot.Products),
		"scraped_at":     snapshot.ScrapedAt,
	})
}

// ScrapeRequest asks the scraper to fetch a listing page and replace the
// current snapshot with what it finds.
type ScrapeRequest struct {
	URL         string `json:"url"`
	MaxProducts int    `json:"max_products,omitempty"`
}

// ScrapeHandler fetches a listing page, replaces the snapshot and saves
// it to disk.
func (api *API) ScrapeHandler(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if validation := ValidateScrapeURL(req.URL); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	maxProducts := req.MaxProducts
	if maxProducts <= 0 {
		maxProducts = api.maxProducts
	}

	products, err := api.producer.Scrape(c.Request.Context(), req.URL, maxProducts)
	if err != nil {
		SendScrapeError(c, err)
		return
	}

	scrapedAt := time.Now().UTC()
	api.snapshots.ReplaceAt(products, scrapedAt)
	metrics.SnapshotProducts.Set(float64(len(products)))

	if err := persistence.SaveSnapshot(api.snapshotPath, products, scrapedAt); err != nil {
		// The snapshot is live in memory; losing the disk copy only
		// costs the next restart a re-scrape.
		api.logger.Warn("failed to save snapshot", zap.String("path", api.snapshotPath), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Scrape completed",
		"total_products": len(products),
		"scraped_at":     scrapedAt,
	})
}

// GetProductsHandler returns the current snapshot in the same envelope
// the persistence layer writes.
func (api *API) GetProductsHandler(c *gin.Context) {
	snapshot := api.snapshots.Current()
	c.JSON(http.StatusOK, gin.H{
		"scraped_at":     snapshot.ScrapedAt,
		"total_products": len(snapshot.Products),
		"products":       snapshot.Products,
	})
}

// ClearProductsHandler empties the snapshot, the query history and the
// saved snapshot file.
func (api *API) ClearProductsHandler(c *gin.Context) {
	api.snapshots.Clear()
	api.history.Clear()
	metrics.SnapshotProducts.Set(0)

	if err := os.Remove(api.snapshotPath); err != nil && !os.IsNotExist(err) {
		SendPersistenceError(c, "remove snapshot file", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Products cleared"})
}

// LoadProductsHandler restores the snapshot saved on disk, replacing the
// in-memory one.
func (api *API) LoadProductsHandler(c *gin.Context) {
	products, scrapedAt, err := persistence.LoadSnapshot(api.snapshotPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			SendSnapshotNotFoundError(c, api.snapshotPath)
			return
		}
		SendPersistenceError(c, "load snapshot", err)
		return
	}

	api.snapshots.ReplaceAt(products, scrapedAt)
	metrics.SnapshotProducts.Set(float64(len(products)))

	c.JSON(http.StatusOK, gin.H{
		"message":        "Snapshot loaded",
		"total_products": len(products),
		"scraped_at":     scrapedAt,
	})
}

// RetrieveHandler runs the retrieval pipeline for one query.
func (api *API) RetrieveHandler(c *gin.Context) {
	var req services.RetrievalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if validation := validateQueryRequest(req.Query, req.TopK); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	if req.TopK <= 0 {
		req.TopK = api.defaultTopK
	}

	result, err := api.retriever.Retrieve(req)
	if err != nil {
		SendRetrievalError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AskRequest asks the answer backend a question grounded in the current
// snapshot.
type AskRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// AskHandler retrieves the products relevant to the question, formats
// them as context and asks the configured answer backend.
func (api *API) AskHandler(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if validation := validateQueryRequest(req.Query, req.TopK); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	if api.answerer == nil {
		SendBackendUnconfiguredError(c)
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = api.defaultTopK
	}

	result, err := api.retriever.Retrieve(services.RetrievalRequest{Query: req.Query, TopK: topK})
	if err != nil {
		SendRetrievalError(c, err)
		return
	}

	productContext := llm.FormatContext(result.Products)
	answer, err := api.answerer.Answer(c.Request.Context(), productContext, req.Query)
	if err != nil {
		SendBackendError(c, err)
		return
	}

	api.history.Add(store.HistoryEntry{
		Query:   req.Query,
		Answer:  answer,
		AskedAt: time.Now().UTC(),
		Matched: result.Matched,
	})

	c.JSON(http.StatusOK, gin.H{
		"answer":   answer,
		"products": productsOrEmpty(result.Products),
		"intent":   result.Intent,
		"query_id": result.QueryID,
		"took":     result.Took,
	})
}

// HistoryHandler lists answered questions, newest first.
func (api *API) HistoryHandler(c *gin.Context) {
	entries := api.history.Entries()
	c.JSON(http.StatusOK, gin.H{
		"total":   len(entries),
		"entries": entries,
	})
}

func validateQueryRequest(query string, topK int) *ValidationResult {
	result := ValidateQuery(query)
	if topKResult := ValidateTopK(topK); topKResult.HasErrors() {
		for _, err := range topKResult.Errors {
			result.AddError(err.Field, err.Message)
		}
	}
	return result
}

func productsOrEmpty(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
