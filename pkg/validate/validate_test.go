package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/vyapar/pkg/validate"
)

type trackingInput struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
	CourierName    string `json:"courier_name"    validate:"required"`
}

func TestRequired_TrimsWhitespace(t *testing.T) {
	errs := validate.Struct(trackingInput{TrackingNumber: "   ", CourierName: "BlueDart"})
	assert.True(t, validate.HasErrors(errs))
	assert.Contains(t, errs, "tracking_number")
	assert.NotContains(t, errs, "courier_name")
}

func TestRequired_PassesWhenFilled(t *testing.T) {
	errs := validate.Struct(trackingInput{TrackingNumber: "TRK123", CourierName: "BlueDart"})
	assert.False(t, validate.HasErrors(errs))
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gt=0"`
	}
	errs := validate.Struct(in{Price: 0})
	assert.Contains(t, errs, "price")

	errs = validate.Struct(in{Price: 499.5})
	assert.False(t, validate.HasErrors(errs))
}

func TestInRule_KeepsItemListTogether(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=pending,confirmed,shipped"`
	}
	errs := validate.Struct(in{Status: "confirmed"})
	assert.False(t, validate.HasErrors(errs))

	errs = validate.Struct(in{Status: "bogus"})
	assert.Contains(t, errs, "status")
}

func TestNullable_SkipsRemainingRules(t *testing.T) {
	type in struct {
		SalePrice float64 `json:"sale_price" validate:"nullable,gt=0"`
	}
	errs := validate.Struct(in{})
	assert.False(t, validate.HasErrors(errs))

	errs = validate.Struct(in{SalePrice: -1})
	assert.Contains(t, errs, "sale_price")
}

func TestSlugRule(t *testing.T) {
	type in struct {
		Slug string `json:"slug" validate:"required,slug"`
	}
	assert.False(t, validate.HasErrors(validate.Struct(in{Slug: "silk-saree-2"})))
	assert.Contains(t, validate.Struct(in{Slug: "Silk Saree"}), "slug")
}

func TestErrors_ErrorJoinsMessages(t *testing.T) {
	err := validate.Check(trackingInput{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tracking_number")
	assert.Contains(t, err.Error(), "courier_name")
}
