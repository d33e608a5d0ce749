package products

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shashiranjanraj/vyapar/pkg/validate"
)

// VariantForm is one variant row on the product form. A zero ID marks a
// new variant; an existing ID updates the stored one in place.
type VariantForm struct {
	ID              int64   `json:"id,omitempty"`
	Size            string  `json:"size"`
	Color           string  `json:"color"`
	AdditionalPrice float64 `json:"additional_price"`
	StockQuantity   int     `json:"stock_quantity" validate:"gte=0"`
	SKU             string  `json:"sku"`
}

// Form is the create/update payload for a product.
type Form struct {
	Name              string        `json:"name" validate:"required"`
	Slug              string        `json:"slug" validate:"required,slug"`
	Description       string        `json:"description"`
	CategoryID        int64         `json:"category_id" validate:"required"`
	Price             float64       `json:"price" validate:"required,gt=0"`
	SalePrice         *float64      `json:"sale_price"`
	SKU               string        `json:"sku" validate:"required"`
	StockQuantity     int           `json:"stock_quantity" validate:"gte=0"`
	LowStockThreshold int           `json:"low_stock_threshold" validate:"gte=0"`
	IsFeatured        bool          `json:"is_featured"`
	IsActive          bool          `json:"is_active"`
	Variants          []VariantForm `json:"variants"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]+`)
var slugDashes = regexp.MustCompile(`-{2,}`)

// Slugify derives a URL slug from a product name: lowercased, spaces to
// dashes, everything else stripped.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Validate normalises the form and applies every local rule: tag rules,
// sale price below regular price, per-variant size-or-color and SKU
// rules, and the variant stock cap. A form that fails here never reaches
// the network.
func (f *Form) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Description = strings.TrimSpace(f.Description)
	f.SKU = strings.TrimSpace(f.SKU)
	if f.Slug == "" {
		f.Slug = Slugify(f.Name)
	}

	errs := validate.Struct(*f)
	if errs == nil {
		errs = validate.Errors{}
	}

	if f.SalePrice != nil && *f.SalePrice >= f.Price {
		errs["sale_price"] = "sale price must be less than the regular price"
	}

	seen := map[string]bool{}
	variantTotal := 0
	for i := range f.Variants {
		v := &f.Variants[i]
		v.Size = strings.TrimSpace(v.Size)
		v.Color = strings.TrimSpace(v.Color)
		v.SKU = strings.TrimSpace(v.SKU)

		key := fmt.Sprintf("variants.%d", i)
		if v.Size == "" && v.Color == "" {
			errs[key+".size"] = "variant needs a size or a color"
		}
		if v.SKU == "" {
			errs[key+".sku"] = "variant SKU is required"
		} else if seen[v.SKU] {
			errs[key+".sku"] = fmt.Sprintf("duplicate variant SKU %q", v.SKU)
		}
		seen[v.SKU] = true
		variantTotal += v.StockQuantity
	}

	if len(f.Variants) > 0 && variantTotal > f.StockQuantity {
		errs["variants"] = fmt.Sprintf(
			"total variant stock (%d) exceeds main product stock (%d)", variantTotal, f.StockQuantity)
	}

	if validate.HasErrors(errs) {
		return errs
	}
	return nil
}

// payload renders the form as the backend's wire shape, mapping empty
// variant dimensions to null the way the API expects.
func (f *Form) payload() map[string]any {
	variants := make([]map[string]any, 0, len(f.Variants))
	for _, v := range f.Variants {
		m := map[string]any{
			"size":             nullable(v.Size),
			"color":            nullable(v.Color),
			"additional_price": v.AdditionalPrice,
			"stock_quantity":   v.StockQuantity,
			"sku":              v.SKU,
		}
		if v.ID != 0 {
			m["id"] = v.ID
		}
		variants = append(variants, m)
	}

	return map[string]any{
		"name":                f.Name,
		"slug":                f.Slug,
		"description":         f.Description,
		"category_id":         f.CategoryID,
		"price":               f.Price,
		"sale_price":          f.SalePrice,
		"sku":                 f.SKU,
		"stock_quantity":      f.StockQuantity,
		"low_stock_threshold": f.LowStockThreshold,
		"is_featured":         f.IsFeatured,
		"is_active":           f.IsActive,
		"variants":            variants,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
