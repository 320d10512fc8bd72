package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrapeError(t *testing.T) {
	err := NewScrapeError("https://example.com/products", "status 403")

	assert.True(t, errors.Is(err, ErrScrapeFailed))
	assert.False(t, errors.Is(err, ErrBackendUnavailable))
	assert.Contains(t, err.Error(), "https://example.com/products")
	assert.Contains(t, err.Error(), "status 403")
}

func TestBackendError(t *testing.T) {
	err := NewBackendError("groq", "timeout")

	assert.True(t, errors.Is(err, ErrBackendUnavailable))
	assert.Contains(t, err.Error(), "groq")
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := NewValidationError("query", "cannot be empty")
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("without field", func(t *testing.T) {
		err := NewValidationError("", "bad request")
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Equal(t, "validation error: bad request", err.Error())
	})
}

func TestWrappedSentinelsSurvive(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NewScrapeError("http://x", "no records"))
	assert.True(t, errors.Is(wrapped, ErrScrapeFailed))
}
