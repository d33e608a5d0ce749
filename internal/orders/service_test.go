package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/orders"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/kvstore"
	"github.com/shashiranjanraj/vyapar/pkg/testkit"
)

const base = "http://api.test/api"

func yes(string) bool { return true }
func no(string) bool  { return false }

func newService(t *testing.T, confirm orders.Confirmer) (*orders.Service, *testkit.MockTransport) {
	t.Helper()
	mt := testkit.Install(t)
	sessions := session.New(kvstore.NewMemory())
	require.NoError(t, sessions.Login("tok", session.Admin{ID: 1, Username: "admin"}, false))
	api := gateway.New(base, sessions)
	return orders.New(api, sessions, confirm), mt
}

func stubOrder(mt *testkit.MockTransport, body string) {
	mt.Stub("GET", "/api/admin/orders/42", 200, body)
}

const codPendingOrder = `{
	"id": 42, "order_number": "ORD-042",
	"customer_name": "Asha", "customer_email": "asha@example.com",
	"order_status": "confirmed", "payment_status": "pending",
	"payment_method": "cod", "tax_amount": "67.50", "final_amount": "1499.50"
}`

// codPending mirrors codPendingOrder as the snapshot a view holds after
// rendering the order detail.
func codPending() *orders.Order {
	return &orders.Order{
		ID: 42, OrderNumber: "ORD-042",
		Status:        orders.StatusConfirmed,
		PaymentStatus: orders.PaymentPending,
		PaymentMethod: orders.MethodCOD,
	}
}

func TestGet_ParsesStringAmounts(t *testing.T) {
	svc, mt := newService(t, yes)
	stubOrder(mt, codPendingOrder)

	order, err := svc.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.InDelta(t, 1499.50, order.FinalAmount.Float(), 0.001)
	assert.InDelta(t, 67.50, order.TaxAmount.Float(), 0.001)
	assert.Equal(t, "ORD-042", order.OrderNumber)
}

func TestUpdateStatus_SendsPayloadAndRefetches(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("PATCH", "/api/admin/orders/42/status", 200, `{}`)
	stubOrder(mt, codPendingOrder)

	_, err := svc.UpdateStatus(context.Background(), 42, "shipped", "left warehouse")
	require.NoError(t, err)

	calls := mt.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "PATCH", calls[0].Method)
	assert.JSONEq(t, `{"new_status":"shipped","notes":"left warehouse"}`, calls[0].Body)
	assert.Equal(t, "GET", calls[1].Method, "every successful mutation re-fetches the order")
}

func TestUpdateStatus_EmptyNotesSentAsNull(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("PATCH", "/api/admin/orders/42/status", 200, `{}`)
	stubOrder(mt, codPendingOrder)

	_, err := svc.UpdateStatus(context.Background(), 42, "confirmed", "   ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"new_status":"confirmed","notes":null}`, mt.Calls()[0].Body)
}

func TestUpdateStatus_UnknownStatusFailsLocally(t *testing.T) {
	svc, mt := newService(t, yes)

	_, err := svc.UpdateStatus(context.Background(), 42, "teleported", "")
	require.Error(t, err)
	assert.Zero(t, mt.TotalCalls())
}

func TestAddTracking_RoundTrip(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("PATCH", "/api/admin/orders/42/tracking", 200, `{}`)
	stubOrder(mt, `{"id":42,"order_number":"ORD-042","order_status":"shipped",
		"tracking_number":"TRK123","courier_name":"BlueDart"}`)

	order, err := svc.AddTracking(context.Background(), 42, " TRK123 ", "BlueDart")
	require.NoError(t, err)
	assert.Equal(t, "TRK123", order.TrackingNumber)
	assert.Equal(t, "BlueDart", order.CourierName)
	assert.JSONEq(t, `{"tracking_number":"TRK123","courier_name":"BlueDart"}`, mt.Calls()[0].Body)
}

func TestAddTracking_BlankFieldsFailLocally(t *testing.T) {
	svc, mt := newService(t, yes)

	_, err := svc.AddTracking(context.Background(), 42, "   ", "BlueDart")
	require.Error(t, err)
	assert.Zero(t, mt.TotalCalls(), "local validation must not reach the server")
}

func TestCancel_AlreadyCancelledMakesNoNetworkCall(t *testing.T) {
	svc, mt := newService(t, yes)
	order := codPending()
	order.Status = orders.StatusCancelled

	_, err := svc.Cancel(context.Background(), order, "")
	assert.ErrorIs(t, err, orders.ErrAlreadyCancelled)
	assert.Zero(t, mt.TotalCalls(), "refusal must be decided from the snapshot alone")
}

func TestCancel_DeliveredMakesNoNetworkCall(t *testing.T) {
	svc, mt := newService(t, yes)
	order := codPending()
	order.Status = orders.StatusDelivered

	_, err := svc.Cancel(context.Background(), order, "customer asked")
	assert.ErrorIs(t, err, orders.ErrCancelDelivered)
	assert.Zero(t, mt.TotalCalls(), "refusal must be decided from the snapshot alone")
}

func TestCancel_DeclinedConfirmationSendsNothing(t *testing.T) {
	svc, mt := newService(t, no)

	_, err := svc.Cancel(context.Background(), codPending(), "")
	assert.ErrorIs(t, err, orders.ErrDeclined)
	assert.Zero(t, mt.TotalCalls())
}

func TestCancel_Confirmed(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("PATCH", "/api/admin/orders/42/cancel", 200, `{}`)
	stubOrder(mt, codPendingOrder)

	_, err := svc.Cancel(context.Background(), codPending(), "duplicate order")
	require.NoError(t, err)
	assert.Equal(t, 1, mt.CallCount("PATCH", "/api/admin/orders/42/cancel"))
	assert.JSONEq(t, `{"reason":"duplicate order"}`, mt.Calls()[0].Body)
	assert.Equal(t, "GET", mt.Calls()[1].Method, "successful cancel re-fetches the order")
}

func TestMarkPaymentReceived_OnlineMakesNoNetworkCall(t *testing.T) {
	svc, mt := newService(t, yes)
	order := codPending()
	order.PaymentMethod = orders.MethodOnline

	_, err := svc.MarkPaymentReceived(context.Background(), order)
	assert.ErrorIs(t, err, orders.ErrNotCOD)
	assert.Zero(t, mt.TotalCalls())
}

func TestMarkPaymentReceived_AlreadyCompletedIsInformational(t *testing.T) {
	svc, mt := newService(t, yes)
	order := codPending()
	order.Status = orders.StatusDelivered
	order.PaymentStatus = orders.PaymentCompleted

	_, err := svc.MarkPaymentReceived(context.Background(), order)
	assert.ErrorIs(t, err, orders.ErrPaymentAlreadyCompleted)
	assert.Zero(t, mt.TotalCalls(), "informational no-op must not touch the server")
}

func TestMarkPaymentReceived_SendsQueryParam(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("PATCH", "/api/admin/orders/42/payment-status", 200, `{}`)
	stubOrder(mt, codPendingOrder)

	_, err := svc.MarkPaymentReceived(context.Background(), codPending())
	require.NoError(t, err)

	calls := mt.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "PATCH", calls[0].Method)
	assert.Contains(t, calls[0].Query, "payment_status=completed")
}

func TestStats_Summary(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("GET", "/api/admin/orders/stats/summary", 200,
		`{"total_orders":12,"by_status":{"pending":3,"confirmed":2,"processing":1,"shipped":2,"delivered":3,"cancelled":1}}`)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalOrders)
	assert.Equal(t, 3, stats.ByStatus["pending"])
	assert.Equal(t, 3, stats.InProcess())
}
