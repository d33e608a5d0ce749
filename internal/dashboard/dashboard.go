// Package dashboard assembles the overview screen from four independent
// backend endpoints plus the low-stock banner. The sections are fetched
// concurrently and each one fails on its own: a dead breakdown endpoint
// still leaves stats, popular products and recent orders renderable.
package dashboard

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/orders"
	"github.com/shashiranjanraj/vyapar/pkg/bind"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// Stats is the headline counter block.
type Stats struct {
	TotalSales    bind.Number `json:"total_sales"`
	TotalOrders   int         `json:"total_orders"`
	TodaySales    bind.Number `json:"today_sales"`
	TodayOrders   int         `json:"today_orders"`
	PendingOrders int         `json:"pending_orders"`
}

// StatusBreakdown is the per-status order count chart data.
type StatusBreakdown struct {
	Pending    int `json:"pending"`
	Confirmed  int `json:"confirmed"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
}

// Total sums all statuses.
func (b *StatusBreakdown) Total() int {
	return b.Pending + b.Confirmed + b.Processing + b.Shipped + b.Delivered + b.Cancelled
}

// PopularProduct is one row of the best-sellers table.
type PopularProduct struct {
	ProductName  string      `json:"product_name"`
	SKU          string      `json:"sku"`
	TotalOrdered int         `json:"total_ordered"`
	TotalRevenue bind.Number `json:"total_revenue"`
}

// LowStock is the banner payload.
type LowStock struct {
	Count int `json:"count"`
}

// Overview is the assembled dashboard. Each section pointer is nil when
// its fetch failed; Errs carries the per-section failures for logging or
// display.
type Overview struct {
	Stats         *Stats
	Breakdown     *StatusBreakdown
	PopularItems  []PopularProduct
	RecentOrders  []orders.Order
	LowStockAlert *LowStock
	Errs          map[string]error
}

// sectionLimit caps the popular-products and recent-orders tables.
const sectionLimit = "5"

// Service fetches the dashboard sections.
type Service struct {
	api *gateway.Client
}

func New(api *gateway.Client) *Service {
	return &Service{api: api}
}

// Load fetches all sections concurrently. Every goroutine writes only its
// own result slot, so no locking is needed beyond the WaitGroup. The
// low-stock banner is best effort: its failure is logged and the slot
// stays nil without appearing in Errs.
func (s *Service) Load(ctx context.Context) *Overview {
	out := &Overview{Errs: map[string]error{}}
	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(section string, err error) {
		mu.Lock()
		out.Errs[section] = err
		mu.Unlock()
	}

	wg.Add(5)

	go func() {
		defer wg.Done()
		var stats Stats
		if err := s.api.Get(ctx, "/admin/dashboard/stats", nil, &stats); err != nil {
			fail("stats", err)
			return
		}
		out.Stats = &stats
	}()

	go func() {
		defer wg.Done()
		var breakdown StatusBreakdown
		if err := s.api.Get(ctx, "/admin/dashboard/order-status-breakdown", nil, &breakdown); err != nil {
			fail("breakdown", err)
			return
		}
		out.Breakdown = &breakdown
	}()

	go func() {
		defer wg.Done()
		var body struct {
			PopularProducts []PopularProduct `json:"popular_products"`
		}
		query := map[string]string{"limit": sectionLimit}
		if err := s.api.Get(ctx, "/admin/dashboard/popular-products", query, &body); err != nil {
			fail("popular_products", err)
			return
		}
		out.PopularItems = body.PopularProducts
	}()

	go func() {
		defer wg.Done()
		var body struct {
			RecentOrders []orders.Order `json:"recent_orders"`
		}
		query := map[string]string{"limit": sectionLimit}
		if err := s.api.Get(ctx, "/admin/dashboard/recent-orders", query, &body); err != nil {
			fail("recent_orders", err)
			return
		}
		out.RecentOrders = body.RecentOrders
	}()

	go func() {
		defer wg.Done()
		var alert LowStock
		if err := s.api.Get(ctx, "/admin/products/low-stock/alert", nil, &alert); err != nil {
			logger.Warn("dashboard: low-stock check failed", "error", err)
			return
		}
		out.LowStockAlert = &alert
	}()

	wg.Wait()

	for section, err := range out.Errs {
		logger.Warn("dashboard: section failed", "section", section, "error", err)
	}
	return out
}
