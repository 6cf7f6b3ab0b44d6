package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ainoggo/internal/domain"
	"ainoggo/internal/export"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 response for work that continues in the background.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCaseType):
		return http.StatusBadRequest, "INVALID_CASE_TYPE", "invalid case type; allowed: general, family, property, criminal, business"
	case errors.Is(err, domain.ErrUnsupportedImageRef):
		return http.StatusBadRequest, "UNSUPPORTED_IMAGE_REF", "image_ref must be a file path, file:// URI or s3://bucket/key"
	case errors.Is(err, domain.ErrImageRefForbidden):
		return http.StatusForbidden, "IMAGE_REF_FORBIDDEN", "image_ref must point inside the configured gallery directory"
	case errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrNoResult):
		return http.StatusConflict, "NO_RESULT", "nothing to export until a request succeeds"
	case errors.Is(err, domain.ErrFlowClosed):
		return http.StatusServiceUnavailable, "FLOW_CLOSED", "the server is shutting down"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
