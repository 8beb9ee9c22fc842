package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carte/internal/domain"
	"carte/internal/middleware"
	"carte/internal/parser"
	"carte/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
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
	msg = service.DescribeError(err)

	var tErr *parser.TransportError
	switch {
	case errors.Is(err, domain.ErrScanNotFound):
		return http.StatusNotFound, "SCAN_NOT_FOUND", msg
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", msg
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", msg
	case errors.Is(err, domain.ErrInvalidImage):
		return http.StatusBadRequest, "INVALID_IMAGE", msg
	case errors.Is(err, domain.ErrUnsupportedImage):
		return http.StatusBadRequest, "UNSUPPORTED_IMAGE", msg
	case errors.Is(err, domain.ErrMissingAPIKey):
		return http.StatusInternalServerError, "MISSING_API_KEY", msg
	case errors.As(err, &tErr):
		if tErr.Kind == parser.TransportRateLimited {
			return http.StatusServiceUnavailable, "RATE_LIMITED", msg
		}
		if tErr.Temporary() {
			return http.StatusServiceUnavailable, "MODEL_UNAVAILABLE", msg
		}
		return http.StatusBadGateway, "MODEL_ERROR", msg
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "MODEL_TIMEOUT", msg
	}

	switch domain.KindOf(err) {
	case domain.KindConfiguration:
		return http.StatusInternalServerError, "CONFIGURATION_ERROR", msg
	case domain.KindTransport:
		return http.StatusServiceUnavailable, "MODEL_UNAVAILABLE", msg
	case domain.KindInvalidResponse:
		return http.StatusBadGateway, "INVALID_MODEL_RESPONSE", msg
	case domain.KindNoValidSelections:
		return http.StatusBadGateway, "NO_VALID_SELECTIONS", msg
	case domain.KindValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR", msg
	case domain.KindEmpty:
		return http.StatusBadRequest, "NO_IMAGES", msg
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if rl, ok := parser.IsRateLimited(err); ok {
		c.Header("Retry-After", strconv.Itoa(int(rl.RetryAfter.Seconds())))
	}
	if status >= 500 {
		zap.L().Error("request failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
