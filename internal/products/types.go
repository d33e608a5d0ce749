package products

import (
	"github.com/shashiranjanraj/vyapar/pkg/bind"
	"github.com/shashiranjanraj/vyapar/pkg/collection"
)

// Product is the backend's catalogue record.
type Product struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	Slug              string       `json:"slug"`
	Description       string       `json:"description"`
	CategoryID        int64        `json:"category_id"`
	Price             bind.Number  `json:"price"`
	SalePrice         *bind.Number `json:"sale_price"`
	SKU               string       `json:"sku"`
	StockQuantity     int          `json:"stock_quantity"`
	LowStockThreshold int          `json:"low_stock_threshold"`
	IsFeatured        bool         `json:"is_featured"`
	IsActive          bool         `json:"is_active"`
	Images            []Image      `json:"images"`
	Variants          []Variant    `json:"variants"`
}

// LowStock reports whether the product is at or below its alert threshold.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// PrimaryImage returns the primary image URL, or the first image, or "".
func (p *Product) PrimaryImage() string {
	if img, ok := collection.First(p.Images, func(i Image) bool { return i.IsPrimary }); ok {
		return img.URL
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// Image is one uploaded product photo.
type Image struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

// Variant is one size/color variation of a product. Size and Color are
// pointers because the backend stores null for the unset dimension.
type Variant struct {
	ID              int64   `json:"id,omitempty"`
	Size            *string `json:"size"`
	Color           *string `json:"color"`
	AdditionalPrice float64 `json:"additional_price"`
	StockQuantity   int     `json:"stock_quantity"`
	SKU             string  `json:"sku"`
}

// LowStockAlert is the reply from /admin/products/low-stock/alert.
type LowStockAlert struct {
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}
