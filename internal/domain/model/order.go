package model

// OrderStatus is the lifecycle state of a purchase order. Values arrive as
// free-form strings from upstream systems; the engine only cares whether a
// status still represents an active commitment, so membership is decided by
// exclusion rather than a whitelist. An unrecognized status therefore counts
// as open, matching how upstream treats it.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusSubmitted OrderStatus = "submitted"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPartial   OrderStatus = "partial"
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusClosed    OrderStatus = "closed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsOpen reports whether the order still represents an active or pending
// commitment. Cancelled and fully received/closed orders contribute zero
// remaining quantity to readiness.
func (s OrderStatus) IsOpen() bool {
	switch s {
	case OrderStatusCancelled, OrderStatusReceived, OrderStatusClosed:
		return false
	default:
		return true
	}
}

// Order is a purchase order with its undelivered line items.
type Order struct {
	ID     string      `json:"id" example:"po-1180"`
	Status OrderStatus `json:"status" example:"submitted"`
	Vendor string      `json:"vendor" example:"Heartland Ag Supply"`
	Lines  []OrderLine `json:"lines"`
}

// OrderLine is one line within a purchase order. RemainingQty is the
// undelivered part only; delivered quantity has already moved to inventory.
type OrderLine struct {
	ProductID    string  `json:"product_id" example:"prod-glyphosate"`
	RemainingQty float64 `json:"remaining_qty" example:"80"`
	// Unit may be empty, meaning the line is already in the planned unit.
	Unit Unit `json:"unit,omitempty" example:"gal"`
}
