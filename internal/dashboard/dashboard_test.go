package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vyapar/internal/dashboard"
	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/kvstore"
	"github.com/shashiranjanraj/vyapar/pkg/testkit"
)

const base = "http://api.test/api"

func newService(t *testing.T) (*dashboard.Service, *testkit.MockTransport) {
	t.Helper()
	mt := testkit.Install(t)
	sessions := session.New(kvstore.NewMemory())
	require.NoError(t, sessions.Login("tok", session.Admin{ID: 1, Username: "admin"}, false))
	return dashboard.New(gateway.New(base, sessions)), mt
}

func stubAll(mt *testkit.MockTransport) {
	mt.Stub("GET", "/api/admin/dashboard/stats", 200,
		`{"total_sales":"125000.50","total_orders":340,"today_sales":2500,"today_orders":4,"pending_orders":12}`)
	mt.Stub("GET", "/api/admin/dashboard/order-status-breakdown", 200,
		`{"pending":12,"confirmed":8,"processing":5,"shipped":10,"delivered":300,"cancelled":5}`)
	mt.Stub("GET", "/api/admin/dashboard/popular-products", 200,
		`{"popular_products":[{"product_name":"Silk Saree","sku":"SAREE-001","total_ordered":42,"total_revenue":41958}]}`)
	mt.Stub("GET", "/api/admin/dashboard/recent-orders", 200,
		`{"recent_orders":[{"id":1,"order_number":"ORD-001","customer_name":"Asha","order_status":"pending"}]}`)
	mt.Stub("GET", "/api/admin/products/low-stock/alert", 200, `{"count":3}`)
}

func TestLoad_AllSections(t *testing.T) {
	svc, mt := newService(t)
	stubAll(mt)

	ov := svc.Load(context.Background())
	assert.Empty(t, ov.Errs)

	require.NotNil(t, ov.Stats)
	assert.InDelta(t, 125000.50, ov.Stats.TotalSales.Float(), 0.001)
	assert.Equal(t, 340, ov.Stats.TotalOrders)

	require.NotNil(t, ov.Breakdown)
	assert.Equal(t, 340, ov.Breakdown.Total())

	require.Len(t, ov.PopularItems, 1)
	assert.Equal(t, "SAREE-001", ov.PopularItems[0].SKU)

	require.Len(t, ov.RecentOrders, 1)
	assert.Equal(t, "ORD-001", ov.RecentOrders[0].OrderNumber)

	require.NotNil(t, ov.LowStockAlert)
	assert.Equal(t, 3, ov.LowStockAlert.Count)
}

func TestLoad_OneSectionFailingLeavesOthers(t *testing.T) {
	svc, mt := newService(t)
	stubAll(mt)
	mt.Stub("GET", "/api/admin/dashboard/order-status-breakdown", 500, `{"detail":"boom"}`)

	ov := svc.Load(context.Background())

	assert.Nil(t, ov.Breakdown)
	assert.Contains(t, ov.Errs, "breakdown")
	assert.NotNil(t, ov.Stats, "other sections must survive one failure")
	assert.NotEmpty(t, ov.PopularItems)
}

func TestLoad_LowStockFailureIsSilent(t *testing.T) {
	svc, mt := newService(t)
	stubAll(mt)
	mt.Stub("GET", "/api/admin/products/low-stock/alert", 500, `{"detail":"boom"}`)

	ov := svc.Load(context.Background())
	assert.Nil(t, ov.LowStockAlert)
	assert.Empty(t, ov.Errs, "the banner is best effort and never reported as an error")
}

func TestLoad_RequestsCappedSections(t *testing.T) {
	svc, mt := newService(t)
	stubAll(mt)

	svc.Load(context.Background())

	for _, c := range mt.Calls() {
		switch c.Path {
		case "/api/admin/dashboard/popular-products", "/api/admin/dashboard/recent-orders":
			assert.Contains(t, c.Query, "limit=5")
		}
	}
	assert.Equal(t, 5, mt.TotalCalls())
}
