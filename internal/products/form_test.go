package products_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vyapar/internal/products"
	"github.com/shashiranjanraj/vyapar/pkg/validate"
)

func validForm() *products.Form {
	sale := 799.0
	return &products.Form{
		Name:              "Silk Saree",
		Slug:              "silk-saree",
		CategoryID:        3,
		Price:             999,
		SalePrice:         &sale,
		SKU:               "SAREE-001",
		StockQuantity:     50,
		LowStockThreshold: 10,
		IsActive:          true,
	}
}

func TestFormValidate_HappyPath(t *testing.T) {
	assert.NoError(t, validForm().Validate())
}

func TestFormValidate_SlugAutoGenerated(t *testing.T) {
	f := validForm()
	f.Slug = ""
	f.Name = "  Banarasi Silk Saree 2  "
	require.NoError(t, f.Validate())
	assert.Equal(t, "banarasi-silk-saree-2", f.Slug)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "silk-saree", products.Slugify("Silk Saree"))
	assert.Equal(t, "sale-50-off", products.Slugify("  Sale!  50% Off  "))
	assert.Equal(t, "a-b", products.Slugify("a --- b"))
}

func TestFormValidate_SalePriceMustBeBelowPrice(t *testing.T) {
	f := validForm()
	equal := f.Price
	f.SalePrice = &equal

	err := f.Validate()
	require.Error(t, err)
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "sale_price")
}

func TestFormValidate_VariantStockAtCapPasses(t *testing.T) {
	f := validForm()
	f.StockQuantity = 30
	f.Variants = []products.VariantForm{
		{Size: "M", SKU: "SAREE-001-M", StockQuantity: 10},
		{Size: "L", SKU: "SAREE-001-L", StockQuantity: 20},
	}
	assert.NoError(t, f.Validate())
}

func TestFormValidate_VariantStockOverCapFails(t *testing.T) {
	f := validForm()
	f.StockQuantity = 30
	f.Variants = []products.VariantForm{
		{Size: "M", SKU: "SAREE-001-M", StockQuantity: 10},
		{Size: "L", SKU: "SAREE-001-L", StockQuantity: 21},
	}

	err := f.Validate()
	require.Error(t, err)
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "variants")
}

func TestFormValidate_VariantNeedsSizeOrColor(t *testing.T) {
	f := validForm()
	f.Variants = []products.VariantForm{{SKU: "SAREE-001-X", StockQuantity: 1}}

	err := f.Validate()
	require.Error(t, err)
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "variants.0.size")

	f = validForm()
	f.Variants = []products.VariantForm{{Color: "Red", SKU: "SAREE-001-R", StockQuantity: 1}}
	assert.NoError(t, f.Validate())
}

func TestFormValidate_DuplicateVariantSKU(t *testing.T) {
	f := validForm()
	f.Variants = []products.VariantForm{
		{Size: "M", SKU: "DUP", StockQuantity: 1},
		{Size: "L", SKU: "DUP", StockQuantity: 1},
	}

	err := f.Validate()
	require.Error(t, err)
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "variants.1.sku")
}

func TestFormValidate_RequiredFields(t *testing.T) {
	err := (&products.Form{}).Validate()
	require.Error(t, err)
	var errs validate.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "sku")
	assert.Contains(t, errs, "category_id")
	assert.Contains(t, errs, "price")
}
