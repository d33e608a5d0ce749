package products_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vyapar/internal/products"
)

var catalogue = []products.Product{
	{ID: 1, Name: "Silk Saree", SKU: "SAREE-001", CategoryID: 3, IsActive: true, StockQuantity: 50, LowStockThreshold: 10},
	{ID: 2, Name: "Cotton Kurta", SKU: "KURTA-001", CategoryID: 4, IsActive: true, StockQuantity: 5, LowStockThreshold: 10},
	{ID: 3, Name: "Linen Saree", SKU: "SAREE-002", CategoryID: 3, IsActive: false, StockQuantity: 0, LowStockThreshold: 5},
}

func TestProductFilter_SearchMatchesNameAndSKU(t *testing.T) {
	got := products.Filter{Search: "saree"}.Apply(catalogue)
	assert.Len(t, got, 2)

	got = products.Filter{Search: "kurta-001"}.Apply(catalogue)
	require.Len(t, got, 1)
	assert.EqualValues(t, 2, got[0].ID)
}

func TestProductFilter_Category(t *testing.T) {
	got := products.Filter{CategoryID: 3}.Apply(catalogue)
	assert.Len(t, got, 2)
}

func TestProductFilter_ActiveFlag(t *testing.T) {
	got := products.Filter{Active: "false"}.Apply(catalogue)
	require.Len(t, got, 1)
	assert.EqualValues(t, 3, got[0].ID)
}

func TestProductFilter_LowStockOnly(t *testing.T) {
	got := products.Filter{LowStockOnly: true}.Apply(catalogue)
	assert.Len(t, got, 2) // stock 5 of 10 and stock 0 of 5
}

func TestProductFilter_Combined(t *testing.T) {
	got := products.Filter{Search: "saree", Active: "true"}.Apply(catalogue)
	require.Len(t, got, 1)
	assert.Equal(t, "SAREE-001", got[0].SKU)
}

func TestPrimaryImage(t *testing.T) {
	p := products.Product{Images: []products.Image{
		{ID: 1, URL: "/a.jpg"},
		{ID: 2, URL: "/b.jpg", IsPrimary: true},
	}}
	assert.Equal(t, "/b.jpg", p.PrimaryImage())

	p.Images[1].IsPrimary = false
	assert.Equal(t, "/a.jpg", p.PrimaryImage())

	assert.Empty(t, (&products.Product{}).PrimaryImage())
}
