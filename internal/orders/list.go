package orders

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/vyapar/pkg/collection"
)

// Filter narrows an order list. Zero values mean "no constraint".
type Filter struct {
	Search        string // matches order number, customer name or email
	Status        string
	PaymentStatus string
}

// Apply filters a fetched snapshot in memory. The search term matches
// case-insensitively; all constraints combine with AND.
func (f Filter) Apply(list []Order) []Order {
	out := list
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		out = collection.Filter(out, func(o Order) bool {
			return strings.Contains(strings.ToLower(o.OrderNumber), term) ||
				strings.Contains(strings.ToLower(o.CustomerName), term) ||
				strings.Contains(strings.ToLower(o.CustomerEmail), term)
		})
	}
	if f.Status != "" {
		out = collection.Filter(out, func(o Order) bool { return o.Status == f.Status })
	}
	if f.PaymentStatus != "" {
		out = collection.Filter(out, func(o Order) bool { return o.PaymentStatus == f.PaymentStatus })
	}
	return out
}

// query renders the filter as export endpoint parameters.
func (f Filter) query() map[string]string {
	return map[string]string{
		"search":         strings.TrimSpace(f.Search),
		"order_status":   f.Status,
		"payment_status": f.PaymentStatus,
	}
}

// Browse fetches all orders, applies the filter and returns one page.
func (s *Service) Browse(ctx context.Context, f Filter, page, perPage int) (collection.Page[Order], error) {
	list, err := s.List(ctx)
	if err != nil {
		return collection.Page[Order]{}, err
	}
	return collection.Paginate(f.Apply(list), page, perPage), nil
}
