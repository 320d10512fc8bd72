package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidQuery     ErrorCode = "INVALID_QUERY"
	ErrorCodeSnapshotNotFound ErrorCode = "SNAPSHOT_NOT_FOUND"

	// Server Error Codes (5xx)
	ErrorCodeInternalError       ErrorCode = "INTERNAL_ERROR"
	ErrorCodeScrapeFailed        ErrorCode = "SCRAPE_FAILED"
	ErrorCodeRetrievalFailed     ErrorCode = "RETRIEVAL_FAILED"
	ErrorCodeBackendUnavailable  ErrorCode = "BACKEND_UNAVAILABLE"
	ErrorCodeBackendUnconfigured ErrorCode = "BACKEND_UNCONFIGURED"
	ErrorCodePersistenceFailed   ErrorCode = "PERSISTENCE_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendScrapeError sends a standardized scrape failure error
func SendScrapeError(c *gin.Context, err error) {
	SendError(c, http.StatusBadGateway, ErrorCodeScrapeFailed,
		"Product scrape failed: "+err.Error())
}

// SendBackendError sends a standardized LLM backend failure error
func SendBackendError(c *gin.Context, err error) {
	SendError(c, http.StatusBadGateway, ErrorCodeBackendUnavailable,
		"Answer backend failed: "+err.Error())
}

// SendBackendUnconfiguredError signals that no answer backend was configured
func SendBackendUnconfiguredError(c *gin.Context) {
	SendError(c, http.StatusServiceUnavailable, ErrorCodeBackendUnconfigured,
		"No answer backend is configured; set LLM_API_KEY and restart")
}

// SendRetrievalError sends a standardized retrieval error
func SendRetrievalError(c *gin.Context, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeRetrievalFailed,
		"Retrieval failed: "+err.Error())
}

// SendPersistenceError sends a standardized persistence error
func SendPersistenceError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodePersistenceFailed,
		"Persistence operation failed ("+operation+"): "+err.Error())
}

// SendSnapshotNotFoundError signals that no saved snapshot exists on disk
func SendSnapshotNotFoundError(c *gin.Context, path string) {
	SendError(c, http.StatusNotFound, ErrorCodeSnapshotNotFound,
		"No saved snapshot found at '"+path+"'")
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}
