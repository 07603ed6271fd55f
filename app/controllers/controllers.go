// Package controllers maps HTTP requests onto the service layer and renders
// the JSON envelope.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/logger"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/response"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/router"
)

// fail translates a service error into the envelope. Unrecognised errors are
// logged with the request ID and surfaced as a generic 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *services.ValidationError

	switch {
	case errors.As(err, &ve):
		response.ValidationFailed(w, "Validation failed", ve.Fields)
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "")
	case errors.Is(err, services.ErrDuplicateCategory):
		response.Conflict(w, "Category already exists")
	case errors.Is(err, services.ErrDuplicateEmail):
		response.Conflict(w, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredential):
		response.Unauthorized(w, "Invalid credential")
	case errors.Is(err, services.ErrPayloadTooLarge):
		response.TooLarge(w, "Photo must not exceed 1MB")
	case errors.Is(err, services.ErrInvalidStatus):
		response.Fail(w, http.StatusBadRequest, "Invalid order status")
	default:
		logger.WithCtx(r.Context()).Error("unhandled service error", "error", err)
		response.Internal(w)
	}
}

// uintParam parses the named URL parameter as an unsigned integer.
func uintParam(r *http.Request, key string) (uint, bool) {
	n, err := strconv.ParseUint(router.Param(r, key), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
