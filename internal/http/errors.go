package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/pastel/internal/service"
	"github.com/aussiebroadwan/pastel/pkg/httpx"
	"github.com/aussiebroadwan/pastel/pkg/slogx"
)

// writeServiceError maps service error kinds onto stable HTTP error codes.
// Anything unrecognised is a server fault and gets logged with its cause;
// the client sees only a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		httpx.WriteError(w, http.StatusBadRequest,
			"duplicate_email", "Email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_credentials", "Invalid email or password")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound,
			"not_found", "Resource not found")
	case errors.Is(err, service.ErrNotOwner):
		httpx.WriteError(w, http.StatusForbidden,
			"ownership_violation", "Not allowed")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Internal server error")
	}
}
