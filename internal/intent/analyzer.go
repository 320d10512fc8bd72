// Package intent derives structured, advisory query intent from free-text
// phrasing by matching fixed keyword and phrase lists. The output is
// Criteria-shaped and never authoritative: the retrieval pipeline applies
// it, but explicit caller criteria always win.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopassist/shop-assistant/services"
)

// Phrase lists tested by substring against the lower-cased query.
var (
	cheapPhrases     = []string{"cheap", "cheapest", "lowest price", "budget"}
	expensivePhrases = []string{"expensive", "highest price", "premium"}
	bestPhrases      = []string{"best", "highest rated", "top rated", "best rating"}
	worstPhrases     = []string{"worst", "lowest rated", "poor rating"}
	availablePhrases = []string{"available", "in stock", "buy now"}
)

var (
	underPriceRegex = regexp.MustCompile(`under \$?(\d+)`)
	overPriceRegex  = regexp.MustCompile(`over \$?(\d+)`)
)

// Analyze extracts sort and filter hints from a raw query. Price phrases
// are evaluated first and rating phrases second, so rating intent
// overwrites price intent when both match. Unmatched dimensions stay at
// their zero values.
func Analyze(query string) services.Intent {
	queryLower := strings.ToLower(query)
	result := services.Intent{}

	if containsAny(queryLower, cheapPhrases) {
		result.SortBy = services.SortPriceAsc
	} else if containsAny(queryLower, expensivePhrases) {
		result.SortBy = services.SortPriceDesc
	}

	if containsAny(queryLower, bestPhrases) {
		result.SortBy = services.SortRatingDesc
	} else if containsAny(queryLower, worstPhrases) {
		result.SortBy = services.SortRatingAsc
	}

	if containsAny(queryLower, availablePhrases) {
		result.AvailableOnly = true
	}

	if bound, ok := matchPrice(queryLower, underPriceRegex); ok {
		result.MaxPrice = &bound
	}
	if bound, ok := matchPrice(queryLower, overPriceRegex); ok {
		result.MinPrice = &bound
	}

	return result
}

func containsAny(query string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(query, phrase) {
			return true
		}
	}
	return false
}

func matchPrice(query string, pattern *regexp.Regexp) (float64, bool) {
	match := pattern.FindStringSubmatch(query)
	if match == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
