package orders_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vyapar/internal/orders"
)

func TestExportCSV_FilenameFromContentDisposition(t *testing.T) {
	svc, mt := newService(t, yes)
	header := http.Header{}
	header.Set("Content-Disposition", `attachment; filename="orders_2026-08-31.csv"`)
	mt.StubWithHeader("GET", "/api/admin/orders/export/csv", 200,
		"order_number,customer\nORD-001,Asha\n", header)

	export, err := svc.ExportCSV(context.Background(), orders.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "orders_2026-08-31.csv", export.Filename)
	assert.Contains(t, string(export.Data), "ORD-001")
}

func TestExportCSV_DefaultFilename(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("GET", "/api/admin/orders/export/csv", 200, "order_number\n")

	export, err := svc.ExportCSV(context.Background(), orders.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "orders_export.csv", export.Filename)
}

func TestExportCSV_PassesFilterParams(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("GET", "/api/admin/orders/export/csv", 200, "order_number\n")

	_, err := svc.ExportCSV(context.Background(), orders.Filter{
		Search: "asha", Status: "shipped", PaymentStatus: "completed",
	})
	require.NoError(t, err)

	calls := mt.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Query, "search=asha")
	assert.Contains(t, calls[0].Query, "order_status=shipped")
	assert.Contains(t, calls[0].Query, "payment_status=completed")
}

func TestAmount_DecodesNumberStringAndNull(t *testing.T) {
	svc, mt := newService(t, yes)
	stubOrder(mt, `{"id":42,"order_number":"ORD-042",
		"subtotal_amount": 1200,
		"shipping_charges": "49.00",
		"final_amount": null}`)

	order, err := svc.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.InDelta(t, 1200, order.SubtotalAmount.Float(), 0.001)
	assert.InDelta(t, 49, order.ShippingCharges.Float(), 0.001)
	assert.Zero(t, order.FinalAmount.Float())
}
