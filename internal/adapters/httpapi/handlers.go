package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
)

type handlers struct {
	mediator mediator.Mediator
	logger   *slog.Logger
}

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status string `json:"status"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *handlers) listProfiles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.mediator.Send(r.Context(), &queries.ListProfilesQuery{})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp.(*queries.ListProfilesResponse).Profiles)
}

func (h *handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	resp, err := h.mediator.Send(r.Context(), &queries.GetProfileQuery{
		ProfileRef: chi.URLParam(r, "profile"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp.(*queries.GetProfileResponse).Profile)
}

func (h *handlers) pooledNeeds(w http.ResponseWriter, r *http.Request) {
	query := &queries.GetPooledNeedsQuery{
		ProfileRef: chi.URLParam(r, "profile"),
		ViewMode:   r.URL.Query().Get("mode"),
	}
	if raw := r.URL.Query().Get("outstanding"); raw != "" {
		outstanding, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "outstanding must be a boolean"})
			return
		}
		query.OutstandingOnly = outstanding
	}

	resp, err := h.mediator.Send(r.Context(), query)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) stationStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.mediator.Send(r.Context(), &queries.GetStationStatusQuery{
		ProfileRef: chi.URLParam(r, "profile"),
		StationRef: chi.URLParam(r, "station"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) exportProgress(w http.ResponseWriter, r *http.Request) {
	resp, err := h.mediator.Send(r.Context(), &queries.ExportProgressQuery{
		ProfileRef: chi.URLParam(r, "profile"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="hideout-progress.json"`)
	h.writeJSON(w, http.StatusOK, resp.(*queries.ExportProgressResponse).Document)
}
