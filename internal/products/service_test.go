package products_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/products"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/kvstore"
	"github.com/shashiranjanraj/vyapar/pkg/testkit"
)

const base = "http://api.test/api"

func yes(string) bool { return true }
func no(string) bool  { return false }

func newService(t *testing.T, confirm products.Confirmer) (*products.Service, *testkit.MockTransport) {
	t.Helper()
	mt := testkit.Install(t)
	sessions := session.New(kvstore.NewMemory())
	require.NoError(t, sessions.Login("tok", session.Admin{ID: 1, Username: "admin"}, false))
	api := gateway.New(base, sessions)
	return products.New(api, sessions, confirm), mt
}

func TestCreate_InvalidFormNeverReachesServer(t *testing.T) {
	svc, mt := newService(t, yes)
	f := validForm()
	f.StockQuantity = 10
	f.Variants = []products.VariantForm{{Size: "M", SKU: "X-M", StockQuantity: 11}}

	_, err := svc.Create(context.Background(), f)
	require.Error(t, err)
	assert.Zero(t, mt.TotalCalls(), "stock rule must refuse before the network")
}

func TestCreate_SendsNullVariantDimensions(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("POST", "/api/admin/products", 200, `{"id":7,"sku":"SAREE-001"}`)

	f := validForm()
	f.Variants = []products.VariantForm{{Size: "M", SKU: "SAREE-001-M", StockQuantity: 5}}

	saved, err := svc.Create(context.Background(), f)
	require.NoError(t, err)
	assert.EqualValues(t, 7, saved.ID)

	body := mt.Calls()[0].Body
	assert.Contains(t, body, `"size":"M"`)
	assert.Contains(t, body, `"color":null`)
}

func TestUpdate_UsesPut(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("PUT", "/api/admin/products/7", 200, `{"id":7,"name":"Silk Saree"}`)

	_, err := svc.Update(context.Background(), 7, validForm())
	require.NoError(t, err)
	assert.Equal(t, 1, mt.CallCount("PUT", "/api/admin/products/7"))
}

func TestToggleActive_Refetches(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("PATCH", "/api/admin/products/7/toggle-active", 200, `{}`)
	mt.Stub("GET", "/api/admin/products/7", 200, `{"id":7,"is_active":false}`)

	p, err := svc.ToggleActive(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, p.IsActive)
	assert.Equal(t, 1, mt.CallCount("GET", "/api/admin/products/7"))
}

func TestDelete_DeclinedSendsNothing(t *testing.T) {
	svc, mt := newService(t, no)

	err := svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, products.ErrDeclined)
	assert.Zero(t, mt.TotalCalls())
}

func TestUploadImage_MultipartFields(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("POST", "/api/admin/upload/product-image", 200,
		`{"id":31,"url":"/media/p7/1.jpg","is_primary":true,"display_order":0}`)

	img, err := svc.UploadImage(context.Background(), 7, "front.jpg",
		strings.NewReader("fake-image-bytes"), true, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 31, img.ID)
	assert.True(t, img.IsPrimary)

	body := mt.Calls()[0].Body
	assert.Contains(t, body, `name="product_id"`)
	assert.Contains(t, body, `name="is_primary"`)
	assert.Contains(t, body, `filename="front.jpg"`)
	assert.Contains(t, body, "fake-image-bytes")
}

func TestLowStockAlert(t *testing.T) {
	svc, mt := newService(t, yes)
	mt.Stub("GET", "/api/admin/products/low-stock/alert", 200, `{"count":3}`)

	alert, err := svc.LowStockAlert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, alert.Count)
}
