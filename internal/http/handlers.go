package httpapi

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/dsjohal14/sitesearch/internal/scope/index"
	"github.com/rs/zerolog"
)

// Handler serves a generated static site for local preview
type Handler struct {
	root   string
	loader *index.Loader
	logger zerolog.Logger
}

// NewHandler creates a preview handler for the site under root
func NewHandler(root string, logger zerolog.Logger) *Handler {
	return &Handler{
		root:   root,
		loader: index.NewLoader(logger),
		logger: logger,
	}
}

// HandleStatic serves files from the site root
func (h *Handler) HandleStatic() http.Handler {
	return http.FileServer(http.Dir(h.root))
}

func (h *Handler) indexPath() string {
	return filepath.Join(h.root, filepath.FromSlash(index.DefaultPath))
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
