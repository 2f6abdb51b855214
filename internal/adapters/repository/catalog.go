package repository

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/boruto/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// heroesYAML is the built-in dataset; its order defines page membership.
//
//go:embed heroes.yaml
var heroesYAML []byte

// Catalog is an immutable, paginated hero collection.
//
// All state is fixed in New; every method is safe for concurrent use
// without locking. Returned slices are copies.
type Catalog struct {
	pageSize  int
	pageCount int

	heroes []model.Hero
	// lowered holds heroes[i].Name in lower case for search.
	lowered []string
}

// New builds a Catalog from heroes, validating that they fill exactly
// pageCount pages of pageSize heroes each.
func New(_ context.Context, heroes []model.Hero, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		pageSize:  DefaultPageSize,
		pageCount: DefaultPageCount,
	}
	for _, opt := range opts {
		opt(c)
	}

	if want := c.pageSize * c.pageCount; len(heroes) != want {
		return nil, fmt.Errorf("%w: have %d heroes, want %d (%d pages of %d)",
			ErrInvalidCatalog, len(heroes), want, c.pageCount, c.pageSize)
	}

	seen := make(map[int]struct{}, len(heroes))
	c.heroes = make([]model.Hero, len(heroes))
	c.lowered = make([]string, len(heroes))
	for i, h := range heroes {
		if strings.TrimSpace(h.Name) == "" {
			return nil, fmt.Errorf("%w: hero at position %d has no name", ErrInvalidCatalog, i)
		}
		if _, dup := seen[h.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate hero id %d", ErrInvalidCatalog, h.ID)
		}
		seen[h.ID] = struct{}{}
		c.heroes[i] = cloneHero(h)
		c.lowered[i] = strings.ToLower(h.Name)
	}
	return c, nil
}

// NewDefault builds a Catalog from the embedded dataset.
func NewDefault(ctx context.Context, opts ...Option) (*Catalog, error) {
	heroes, err := Decode(heroesYAML)
	if err != nil {
		return nil, err
	}
	return New(ctx, heroes, opts...)
}

// Decode parses a YAML list of heroes.
func Decode(data []byte) ([]model.Hero, error) {
	var heroes []model.Hero
	if err := yaml.Unmarshal(data, &heroes); err != nil {
		return nil, fmt.Errorf("%w: decode dataset: %w", ErrInvalidCatalog, err)
	}
	return heroes, nil
}

// Page returns the heroes on page n (1-indexed).
// Returns ErrPageNotFound when n is outside [1, PageCount].
func (c *Catalog) Page(_ context.Context, n int) (model.Page, error) {
	if n < 1 || n > c.pageCount {
		return model.Page{}, fmt.Errorf("%w: %d", ErrPageNotFound, n)
	}
	start := (n - 1) * c.pageSize
	return model.Page{
		Number:  n,
		Heroes:  cloneHeroes(c.heroes[start : start+c.pageSize]),
		HasPrev: n > 1,
		HasNext: n < c.pageCount,
	}, nil
}

// Search returns, in catalog order, every hero whose name contains query
// ignoring case. An empty query matches nothing.
func (c *Catalog) Search(_ context.Context, query string) []model.Hero {
	out := []model.Hero{}
	if query == "" {
		return out
	}
	q := strings.ToLower(query)
	for i, name := range c.lowered {
		if strings.Contains(name, q) {
			out = append(out, cloneHero(c.heroes[i]))
		}
	}
	return out
}

// All returns every hero in catalog order.
func (c *Catalog) All(_ context.Context) []model.Hero {
	return cloneHeroes(c.heroes)
}

// Count returns the number of heroes.
func (c *Catalog) Count() int { return len(c.heroes) }

// PageSize returns the number of heroes per page.
func (c *Catalog) PageSize() int { return c.pageSize }

// PageCount returns the number of pages.
func (c *Catalog) PageCount() int { return c.pageCount }

func cloneHeroes(in []model.Hero) []model.Hero {
	out := make([]model.Hero, len(in))
	for i, h := range in {
		out[i] = cloneHero(h)
	}
	return out
}

func cloneHero(h model.Hero) model.Hero {
	h.Family = slices.Clone(h.Family)
	h.Abilities = slices.Clone(h.Abilities)
	h.NatureTypes = slices.Clone(h.NatureTypes)
	return h
}
