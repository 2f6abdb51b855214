package api

import (
	"context"
	"net/http"

	"github.com/okian/boruto/pkg/logger"
)

// RootDependencies provides the welcome message.
type RootDependencies interface {
	Welcome(ctx context.Context) string
}

// RootHandler handles GET /.
type RootHandler struct {
	deps   RootDependencies
	logger logger.Logger
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps RootDependencies, l logger.Logger) *RootHandler {
	return &RootHandler{deps: deps, logger: l}
}

// HandleRoot responds with the welcome message as a JSON string.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, h.deps.Welcome(r.Context())); err != nil {
		h.logger.Error(r.Context(), "write root response", logger.Error(err))
	}
}
