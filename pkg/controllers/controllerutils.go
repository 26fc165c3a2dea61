package controllers

import (
	"context"
	"errors"
	"net/http"

	"khoomi-api-io/backoffice/internal/common"
	"khoomi-api-io/backoffice/pkg/services"
	"khoomi-api-io/backoffice/pkg/util"

	"github.com/gin-gonic/gin"
)

// RequestTimeout bounds every handler's work. Set from config at startup.
var RequestTimeout = common.REQUEST_TIMEOUT_SECS

// WithTimeout creates a context with the standard request timeout
func WithTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), RequestTimeout)
}

// StatusFor maps a service error kind to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidArgument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrMalformedInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleServiceError answers with the status matching err's kind.
func HandleServiceError(c *gin.Context, err error) {
	util.HandleError(c, StatusFor(err), err)
}
