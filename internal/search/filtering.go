package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopassist/shop-assistant/model"
	"github.com/shopassist/shop-assistant/services"
)

// numberRegex matches the first decimal-number substring of a free-form
// price or rating text ("$1,299.99", "4.5 out of 5").
var numberRegex = regexp.MustCompile(`\d+\.?\d*`)

// unavailableMarkers reject a record when available_only is set and its
// availability text contains any of them (case-insensitive).
var unavailableMarkers = []string{"out of stock", "unavailable"}

// ExtractPrice extracts the first numeric value from free-form price text,
// stripping thousands-separator commas first.
func ExtractPrice(priceText string) (float64, bool) {
	return extractNumber(strings.ReplaceAll(priceText, ",", ""))
}

// ExtractRating extracts the first numeric value from free-form rating
// text ("4.5 out of 5" yields 4.5).
func ExtractRating(ratingText string) (float64, bool) {
	return extractNumber(ratingText)
}

func extractNumber(text string) (float64, bool) {
	match := numberRegex.FindString(text)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Filter returns the subset of products, in original order, satisfying
// every configured bound of the criteria. Records whose price or rating
// text has no parseable number fail any price/rating bound: a record
// that cannot be verified is excluded rather than passed through.
// Input records are never mutated.
func Filter(products []model.Product, criteria services.Criteria) []model.Product {
	filtered := make([]model.Product, 0, len(products))
	for _, product := range products {
		if matchesCriteria(product, criteria) {
			filtered = append(filtered, product)
		}
	}
	return filtered
}

// matchesCriteria checks all configured constraints; every one must pass.
func matchesCriteria(product model.Product, criteria services.Criteria) bool {
	if criteria.MinPrice != nil || criteria.MaxPrice != nil {
		priceText, _ := product.GetField(model.FieldPrice)
		price, ok := ExtractPrice(priceText)
		if !ok {
			return false
		}
		if criteria.MinPrice != nil && price < *criteria.MinPrice {
			return false
		}
		if criteria.MaxPrice != nil && price > *criteria.MaxPrice {
			return false
		}
	}

	if criteria.MinRating != nil {
		ratingText, _ := product.GetField(model.FieldRating)
		rating, ok := ExtractRating(ratingText)
		if !ok {
			return false
		}
		if rating < *criteria.MinRating {
			return false
		}
	}

	if criteria.AvailableOnly != nil && *criteria.AvailableOnly {
		// Absent availability text passes: it contains no forbidden marker.
		availability, _ := product.GetField(model.FieldAvailability)
		lowered := strings.ToLower(availability)
		for _, marker := range unavailableMarkers {
			if strings.Contains(lowered, marker) {
				return false
			}
		}
	}

	return true
}
