package products

import (
	"context"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/vyapar/pkg/collection"
)

// Filter narrows a catalogue snapshot. Zero values mean "no constraint".
type Filter struct {
	Search       string // matches name or SKU, case-insensitive
	CategoryID   int64
	Active       string // "true", "false" or "" for both
	LowStockOnly bool
}

// Apply filters a fetched snapshot in memory; constraints combine with AND.
func (f Filter) Apply(list []Product) []Product {
	out := list
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		out = collection.Filter(out, func(p Product) bool {
			return strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.SKU), term)
		})
	}
	if f.CategoryID != 0 {
		out = collection.Filter(out, func(p Product) bool { return p.CategoryID == f.CategoryID })
	}
	if f.Active != "" {
		want, err := strconv.ParseBool(f.Active)
		if err == nil {
			out = collection.Filter(out, func(p Product) bool { return p.IsActive == want })
		}
	}
	if f.LowStockOnly {
		out = collection.Filter(out, func(p Product) bool { return p.LowStock() })
	}
	return out
}

// Browse fetches the catalogue, applies the filter and returns one page.
func (s *Service) Browse(ctx context.Context, f Filter, page, perPage int) (collection.Page[Product], error) {
	list, err := s.List(ctx)
	if err != nil {
		return collection.Page[Product]{}, err
	}
	return collection.Paginate(f.Apply(list), page, perPage), nil
}
