package orders

import (
	"github.com/shashiranjanraj/vyapar/pkg/bind"
	"github.com/shashiranjanraj/vyapar/pkg/collection"
)

// Order statuses as the backend names them.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment methods.
const (
	MethodCOD    = "cod"
	MethodOnline = "online"
)

// Statuses lists the valid order statuses in lifecycle order.
var Statuses = []string{
	StatusPending, StatusConfirmed, StatusProcessing,
	StatusShipped, StatusDelivered, StatusCancelled,
}

// PaymentStatuses lists the valid payment statuses.
var PaymentStatuses = []string{
	PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	return collection.Contains(Statuses, func(v string) bool { return v == s })
}

// Amount is a monetary value; the backend serialises these inconsistently
// so decoding goes through bind.Number.
type Amount = bind.Number

// Order is the backend's order record.
type Order struct {
	ID            int64  `json:"id"`
	OrderNumber   string `json:"order_number"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Status        string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`

	SubtotalAmount  Amount `json:"subtotal_amount"`
	ShippingCharges Amount `json:"shipping_charges"`
	TaxAmount       Amount `json:"tax_amount"`
	FinalAmount     Amount `json:"final_amount"`

	ShippingAddressLine1 string `json:"shipping_address_line1"`
	ShippingAddressLine2 string `json:"shipping_address_line2"`
	ShippingCity         string `json:"shipping_city"`
	ShippingState        string `json:"shipping_state"`
	ShippingPincode      string `json:"shipping_pincode"`
	ShippingCountry      string `json:"shipping_country"`

	TrackingNumber string `json:"tracking_number"`
	CourierName    string `json:"courier_name"`
	OrderNotes     string `json:"order_notes"`

	CreatedAt string `json:"created_at"`

	Items         []Item         `json:"order_items"`
	StatusHistory []HistoryEntry `json:"status_history"`
}

// Item is one line of an order.
type Item struct {
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
	ProductPrice Amount `json:"product_price"`
	Quantity     int    `json:"quantity"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	SKU          string `json:"sku"`
	Subtotal     Amount `json:"subtotal"`
}

// HistoryEntry is one transition in an order's status timeline.
type HistoryEntry struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
}

// Stats is the summary returned by /admin/orders/stats/summary.
type Stats struct {
	TotalOrders int            `json:"total_orders"`
	ByStatus    map[string]int `json:"by_status"`
}

// InProcess sums the counts the console presents as "in process".
func (s *Stats) InProcess() int {
	return s.ByStatus[StatusProcessing] + s.ByStatus[StatusConfirmed]
}
