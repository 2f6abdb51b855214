// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/boruto/internal/domain/types"
	"github.com/okian/boruto/pkg/logger"
)

// StatsProvider defines the interface for getting catalog statistics.
type StatsProvider interface {
	Stats(ctx context.Context) types.CatalogStats
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	logger        logger.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, l logger.Logger) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, logger: l}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, h.statsProvider.Stats(r.Context())); err != nil {
		h.logger.Error(r.Context(), "write stats response", logger.Error(err))
	}
}
