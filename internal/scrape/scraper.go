// Package scrape fetches a product-listing page over plain HTTP and
// extracts structured product records from its DOM. Extraction is
// selector-driven: a fixed list of common listing-page selectors is tried
// in order, so the scraper works across storefronts without per-site
// configuration. Pages that only render products via JavaScript are out
// of reach by design.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	internalErrors "github.com/shopassist/shop-assistant/internal/errors"
	"github.com/shopassist/shop-assistant/internal/metrics"
	"github.com/shopassist/shop-assistant/model"
)

const (
	defaultMaxProducts = 20
	defaultTimeout     = 30 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// cardMatchers locate product cards. The first matcher that yields any
// elements wins; later ones are not tried.
var cardMatchers = []matcher{
	byClass("product-card"),
	byClass("product-item"),
	byClass("product"),
	byClass("item"),
	byAttrContains("data-testid", "product"),
	byClass("s-result-item"),
	byClass("product-tile"),
	byClass("product-box"),
}

// Per-field matchers, tried in order within one card.
var fieldMatchers = map[string][]matcher{
	model.FieldName: {
		byClass("product-title"), byClass("item-title"), byClass("product-name"),
		byTag("h2"), byTag("h3"), byAttrContains("data-testid", "title"), byClass("title"),
	},
	model.FieldPrice: {
		byClass("price"), byClass("product-price"), byClass("cost"),
		byAttrContains("data-testid", "price"), byClass("price-current"),
		byClass("sale-price"), byClass("offer-price"),
	},
	model.FieldRating: {
		byClass("rating"), byClass("product-rating"), byClass("stars"),
		byAttrContains("data-testid", "rating"), byClass("review-score"), byClass("star-rating"),
	},
	model.FieldDescription: {
		byClass("description"), byClass("product-desc"), byClass("summary"),
		byClass("product-details"), byClass("item-description"),
	},
	model.FieldAvailability: {
		byClass("availability"), byClass("in-stock"), byClass("stock-status"),
		byAttrContains("data-testid", "availability"), byClass("inventory-status"),
	},
}

// Scraper fetches listing pages and produces product records.
// It implements services.Producer.
type Scraper struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewScraper creates a Scraper with the given per-request timeout.
func NewScraper(timeout time.Duration, logger *zap.Logger) *Scraper {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Scrape fetches url and extracts up to maxProducts records. Cards
// without a name are skipped. An empty result is not an error; only
// fetch and parse failures are.
func (s *Scraper) Scrape(ctx context.Context, url string, maxProducts int) ([]model.Product, error) {
	if maxProducts <= 0 {
		maxProducts = defaultMaxProducts
	}

	start := time.Now()
	products, err := s.scrape(ctx, url, maxProducts)
	took := time.Since(start)
	metrics.ScrapeDuration.Observe(took.Seconds())

	switch {
	case err != nil:
		metrics.ScrapesTotal.WithLabelValues("error").Inc()
		return nil, err
	case len(products) == 0:
		metrics.ScrapesTotal.WithLabelValues("empty").Inc()
	default:
		metrics.ScrapesTotal.WithLabelValues("success").Inc()
	}

	s.logger.Info("scrape completed",
		zap.String("url", url),
		zap.Int("products", len(products)),
		zap.Duration("took", took),
	)
	return products, nil
}

func (s *Scraper) scrape(ctx context.Context, url string, maxProducts int) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, internalErrors.NewScrapeError(url, err.Error())
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, internalErrors.NewScrapeError(url, err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, internalErrors.NewScrapeError(url, fmt.Sprintf("status %d", resp.StatusCode))
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, internalErrors.NewScrapeError(url, "unparseable HTML: "+err.Error())
	}

	cards := findCards(doc)
	products := make([]model.Product, 0, maxProducts)
	for _, card := range cards {
		if len(products) >= maxProducts {
			break
		}
		product := extractProduct(card)
		if _, hasName := product.GetName(); hasName {
			products = append(products, product)
		}
	}
	return products, nil
}

// findCards returns the product-card nodes of the page: the result of
// the first card matcher that matches anything.
func findCards(doc *html.Node) []*html.Node {
	for _, match := range cardMatchers {
		if cards := findAll(doc, match); len(cards) > 0 {
			return cards
		}
	}
	return nil
}

// extractProduct pulls the recognized fields out of one card. Fields
// whose selectors all miss are left absent rather than set empty.
func extractProduct(card *html.Node) model.Product {
	product := make(model.Product, len(fieldMatchers))
	for _, field := range model.TextFields {
		if text, ok := firstText(card, fieldMatchers[field]); ok {
			product[field] = text
		}
	}
	return product
}

// firstText returns the cleaned text of the first descendant matching any
// of the matchers, in matcher order.
func firstText(card *html.Node, matchers []matcher) (string, bool) {
	for _, match := range matchers {
		if node := findFirst(card, match); node != nil {
			if text := cleanText(nodeText(node)); text != "" {
				return text, true
			}
		}
	}
	return "", false
}
