// Package service validates hero queries, runs them against the catalog
// and shapes the response envelope returned by the HTTP API.
package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/okian/boruto/internal/adapters/repository"
	"github.com/okian/boruto/internal/domain/model"
	"github.com/okian/boruto/internal/domain/types"
	"github.com/okian/boruto/pkg/logger"
	"github.com/okian/boruto/pkg/metrics"
)

// Fixed response messages.
const (
	WelcomeMessage  = "Welcome to Boruto API!"
	MessageOK       = "ok"
	MessageBadPage  = "Only Numbers Allowed."
	MessageNotFound = "Heroes not Found."
)

// defaultPage is used when the page parameter is absent.
const defaultPage = 1

// Catalog is the read side of the hero catalog used by the service.
type Catalog interface {
	Page(ctx context.Context, n int) (model.Page, error)
	Search(ctx context.Context, query string) []model.Hero
	Count() int
	PageCount() int
	PageSize() int
}

// Service answers hero queries. It holds no mutable state and is safe for
// concurrent use.
type Service struct {
	catalog Catalog
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the catalog to query instead of the embedded dataset.
func WithCatalog(c Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without WithCatalog the embedded dataset is
// loaded; a malformed dataset is returned as an error.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.catalog == nil {
		c, err := repository.NewDefault(ctx)
		if err != nil {
			return nil, err
		}
		s.catalog = c
	}

	metrics.UpdateCatalogHeroes(s.catalog.Count())
	s.logger.Info(ctx, "hero catalog ready",
		logger.Int("heroes", s.catalog.Count()),
		logger.Int("pages", s.catalog.PageCount()),
		logger.Int("pageSize", s.catalog.PageSize()),
	)
	return s, nil
}

// Welcome returns the root greeting.
func (s *Service) Welcome(_ context.Context) string {
	return WelcomeMessage
}

// ListHeroes returns one page of heroes. rawPage is the page query value and
// present reports whether it was supplied at all; an absent page means page 1.
func (s *Service) ListHeroes(ctx context.Context, rawPage string, present bool) types.Result {
	n := defaultPage
	if present {
		parsed, err := strconv.Atoi(rawPage)
		if err != nil {
			s.logger.Debug(ctx, "rejecting non-numeric page", logger.String("page", rawPage), logger.Error(err))
			metrics.RecordPageRequest(types.OutcomeBadRequest.String())
			return failure(types.OutcomeBadRequest, MessageBadPage)
		}
		n = parsed
	}

	page, err := s.catalog.Page(ctx, n)
	if err != nil {
		if !errors.Is(err, repository.ErrPageNotFound) {
			s.logger.Warn(ctx, "unexpected catalog error", logger.Int("page", n), logger.Error(err))
		}
		metrics.RecordPageRequest(types.OutcomeNotFound.String())
		return failure(types.OutcomeNotFound, MessageNotFound)
	}

	resp := types.Response{
		Success: true,
		Message: MessageOK,
		Heroes:  page.Heroes,
	}
	if page.HasPrev {
		prev := page.Number - 1
		resp.PrevPage = &prev
	}
	if page.HasNext {
		next := page.Number + 1
		resp.NextPage = &next
	}
	metrics.RecordPageRequest(types.OutcomeOK.String())
	return types.Result{Outcome: types.OutcomeOK, Response: resp}
}

// SearchHeroes returns heroes whose name contains name, ignoring case.
// Search is unpaginated and never fails; an empty name yields no heroes.
func (s *Service) SearchHeroes(ctx context.Context, name string) types.Result {
	heroes := s.catalog.Search(ctx, name)
	if heroes == nil {
		heroes = []model.Hero{}
	}
	metrics.RecordSearchResults(len(heroes))
	s.logger.Debug(ctx, "hero search", logger.String("name", name), logger.Int("matches", len(heroes)))
	return types.Result{
		Outcome: types.OutcomeOK,
		Response: types.Response{
			Success: true,
			Message: MessageOK,
			Heroes:  heroes,
		},
	}
}

// Stats reports the catalog shape.
func (s *Service) Stats(_ context.Context) types.CatalogStats {
	return types.CatalogStats{
		Heroes:   s.catalog.Count(),
		Pages:    s.catalog.PageCount(),
		PageSize: s.catalog.PageSize(),
	}
}

func failure(o types.Outcome, msg string) types.Result {
	return types.Result{
		Outcome: o,
		Response: types.Response{
			Success: false,
			Message: msg,
			Heroes:  []model.Hero{},
		},
	}
}
