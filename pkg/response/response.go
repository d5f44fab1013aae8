package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody uniform error envelope ({error, code, details})
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ── Error codes ──

const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeParse       = "PARSE_ERROR"
	CodeNoEntries   = "NO_VALID_ENTRIES"
	CodeNoMatch     = "NO_MATCH"
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodeTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeRateLimited = "RATE_LIMITED"
	CodeUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal    = "INTERNAL_ERROR"
)

// ── Success ──

// OK 200 with the given payload as the whole body
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// ── Errors ──

// Error generic error response
func Error(c *gin.Context, httpStatus int, code string, message string) {
	c.JSON(httpStatus, ErrorBody{
		Error: message,
		Code:  code,
	})
}

// ErrorWithDetails error response carrying a details string
func ErrorWithDetails(c *gin.Context, httpStatus int, code string, message, details string) {
	c.JSON(httpStatus, ErrorBody{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, code string, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code string, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Unprocessable 422
func Unprocessable(c *gin.Context, code string, message string) {
	Error(c, http.StatusUnprocessableEntity, code, message)
}

// ServiceUnavailable 503
func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, CodeUnavailable, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "Internal server error")
}
