package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	h.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var validationErrs shared.ValidationErrors
	switch {
	case errors.Is(err, progress.ErrProfileNotFound),
		errors.Is(err, hideout.ErrStationNotFound),
		errors.Is(err, hideout.ErrRequirementNotFound):
		return http.StatusNotFound
	case errors.Is(err, hideout.ErrInvalidViewMode),
		errors.Is(err, hideout.ErrInvalidEdition),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
