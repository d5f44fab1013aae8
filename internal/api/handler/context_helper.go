package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vineetm1204-m/ODAutomation/internal/api/middleware"
	"github.com/vineetm1204-m/ODAutomation/internal/service"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
	"github.com/vineetm1204-m/ODAutomation/pkg/response"
)

// MustGetSessionID returns the session id injected by the session
// middleware. On false a 400 has already been written.
func MustGetSessionID(c *gin.Context) (string, bool) {
	sid := middleware.GetSessionID(c)
	if sid == "" {
		response.BadRequest(c, response.CodeValidation, "Session cookie is missing")
		return "", false
	}
	return sid, true
}

// MustGetIntParam parses a positive integer path parameter
func MustGetIntParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		response.BadRequest(c, response.CodeValidation, "Invalid "+name)
		return 0, false
	}
	return n, true
}

// handleCategoryError maps the shared error taxonomy; used as the fallback of
// every handler-specific mapping
func handleCategoryError(c *gin.Context, err error) {
	var (
		ve *apperrors.ValidationError
		pe *apperrors.ParseError
		ne *apperrors.NoMatchError
		te *apperrors.TransportError
	)
	switch {
	case errors.Is(err, service.ErrSessionRequired):
		response.BadRequest(c, response.CodeValidation, "Session cookie is missing")
	case middleware.IsBodyTooLarge(err):
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "Request body too large")
	case errors.As(err, &ve):
		response.BadRequest(c, response.CodeValidation, ve.Message)
	case errors.As(err, &pe):
		response.BadRequest(c, response.CodeParse, pe.Message)
	case errors.As(err, &ne):
		response.NotFound(c, response.CodeNoMatch, ne.Message)
	case errors.As(err, &te):
		status := http.StatusBadGateway
		if te.Kind == apperrors.TransportTimeout {
			status = http.StatusGatewayTimeout
		}
		response.ErrorWithDetails(c, status, te.Code(), te.Message(), err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// bindJSON binds the request body; on false a 400 has been written
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "Request body too large")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", err.Error())
		return false
	}
	return true
}
