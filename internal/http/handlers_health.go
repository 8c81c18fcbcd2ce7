package httpapi

import (
	"net/http"

	"github.com/dsjohal14/sitesearch/internal/scope/index"
)

// HandleHealth reports whether the site's search index can be read and how
// many entries it holds
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	idx, err := h.loader.Fetch(r.Context(), index.File(h.indexPath()))
	if err != nil {
		h.logger.Warn().Err(err).Str("path", h.indexPath()).Msg("search index unreadable")
		writeJSON(w, http.StatusOK, HealthResponse{
			Status: "degraded",
			Index:  IndexStatus{Path: h.indexPath(), Error: err.Error()},
		})
		return
	}

	h.logger.Debug().Int("entries", len(idx)).Msg("health check")

	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "healthy",
		Index:  IndexStatus{Path: h.indexPath(), Entries: len(idx)},
	})
}
