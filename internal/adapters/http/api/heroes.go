// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/boruto/internal/domain/types"
	"github.com/okian/boruto/pkg/logger"
)

// Query parameter names.
const (
	paramPage = "page"
	paramName = "name"
)

// HeroesDependencies defines the interface for hero queries.
type HeroesDependencies interface {
	ListHeroes(ctx context.Context, rawPage string, present bool) types.Result
	SearchHeroes(ctx context.Context, name string) types.Result
}

// HeroesHandler handles hero listing and search.
type HeroesHandler struct {
	deps   HeroesDependencies
	logger logger.Logger
}

// NewHeroesHandler creates a new heroes handler.
func NewHeroesHandler(deps HeroesDependencies, l logger.Logger) *HeroesHandler {
	return &HeroesHandler{deps: deps, logger: l}
}

// HandleList handles GET /boruto/heroes?page=N requests.
func (h *HeroesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	raw, present := queryValue(r, paramPage)
	h.write(w, r, h.deps.ListHeroes(r.Context(), raw, present))
}

// HandleSearch handles GET /boruto/heroes/search?name=X requests.
func (h *HeroesHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	name, _ := queryValue(r, paramName)
	h.write(w, r, h.deps.SearchHeroes(r.Context(), name))
}

func (h *HeroesHandler) write(w http.ResponseWriter, r *http.Request, res types.Result) {
	if err := writeJSON(w, statusFor(res.Outcome), res.Response); err != nil {
		h.logger.Error(r.Context(), "write heroes response", logger.Error(err))
	}
}

// queryValue returns the first value of key and whether key was present.
func queryValue(r *http.Request, key string) (string, bool) {
	vals, ok := r.URL.Query()[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
