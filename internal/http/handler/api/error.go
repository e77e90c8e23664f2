package api

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/garden/internal/core/port"
	"github.com/bornholm/garden/internal/core/service"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type ErrorResponse struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

const (
	detailForbidden   = "Not enough permissions"
	detailInvalidBody = "Invalid request body"
)

func handleForbidden(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusForbidden, ErrorResponse{Detail: detailForbidden})
}

// writeError translates a service error into its HTTP response. notFound
// is the detail used when the addressed resource does not exist.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, r, http.StatusUnprocessableEntity, ErrorResponse{
			Detail: service.ErrValidation.Error(),
			Fields: validationErr.Fields,
		})

	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, r, http.StatusForbidden, ErrorResponse{Detail: detailForbidden})

	case errors.Is(err, service.ErrPlantNotFound):
		writeJSON(w, r, http.StatusNotFound, ErrorResponse{Detail: detailPlantNotFound})

	case errors.Is(err, port.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, ErrorResponse{Detail: notFound})

	case errors.Is(err, port.ErrConflict):
		writeJSON(w, r, http.StatusConflict, ErrorResponse{Detail: http.StatusText(http.StatusConflict)})

	default:
		slog.ErrorContext(r.Context(), "could not process request", slogx.Error(errors.WithStack(err)))
		writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{Detail: http.StatusText(http.StatusInternalServerError)})
	}
}

func writeInvalidBody(w http.ResponseWriter, r *http.Request, err error) {
	slog.DebugContext(r.Context(), "could not decode request body", slogx.Error(err))
	writeJSON(w, r, http.StatusUnprocessableEntity, ErrorResponse{Detail: detailInvalidBody})
}
