// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

const maxQueryLength = 1000

// ValidateQuery validates a user query string
func ValidateQuery(query string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(query) == "" {
		result.AddError("query", "Query is required")
		return result
	}

	if len(query) > maxQueryLength {
		result.AddError("query", fmt.Sprintf("Query cannot exceed %d characters", maxQueryLength))
	}

	return result
}

// ValidateScrapeURL validates a target URL for scraping
func ValidateScrapeURL(rawURL string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(rawURL) == "" {
		result.AddError("url", "URL is required")
		return result
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		result.AddError("url", "URL is not parseable: "+err.Error())
		return result
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		result.AddError("url", "URL scheme must be http or https")
	}

	if parsed.Host == "" {
		result.AddError("url", "URL must include a host")
	}

	return result
}

// ValidateTopK validates a result count parameter
func ValidateTopK(topK int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if topK < 0 {
		result.AddError("top_k", "top_k cannot be negative")
	}

	if topK > 100 {
		result.AddError("top_k", "top_k cannot exceed 100")
	}

	return result
}
