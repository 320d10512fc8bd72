package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrScrapeFailed is returned when a listing page cannot be fetched or
	// yields no records
	ErrScrapeFailed = errors.New("scrape failed")

	// ErrBackendUnavailable is returned when the text-generation backend
	// cannot be reached or refuses the request
	ErrBackendUnavailable = errors.New("llm backend unavailable")

	// ErrMissingAPIKey is returned when an LLM-backed operation runs
	// without a configured API key
	ErrMissingAPIKey = errors.New("llm api key not configured")
)

// ScrapeError represents a scrape failure with the URL that caused it
type ScrapeError struct {
	URL    string
	Reason string
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("failed to scrape '%s': %s", e.URL, e.Reason)
}

func (e *ScrapeError) Is(target error) bool {
	return target == ErrScrapeFailed
}

// NewScrapeError creates a new ScrapeError
func NewScrapeError(url, reason string) *ScrapeError {
	return &ScrapeError{URL: url, Reason: reason}
}

// BackendError represents a text-generation backend failure with context
type BackendError struct {
	Provider string
	Reason   string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend '%s' request failed: %s", e.Provider, e.Reason)
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// NewBackendError creates a new BackendError
func NewBackendError(provider, reason string) *BackendError {
	return &BackendError{Provider: provider, Reason: reason}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
