package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the four lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Deducted reports whether stock has been taken from the catalog while an
// order sits in this state. This single predicate drives every stock
// mutation: entering a deducted state deducts, leaving one restores.
func (s OrderStatus) Deducted() bool {
	return s == StatusPaid || s == StatusCompleted
}

// PaymentMethod is how the customer settled the order.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// Order is a sale and its line items. Item name and unit price are
// snapshots taken when the order was built; later catalog edits do not
// track back into persisted orders.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	Items         []*OrderItem    `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// OrderItem is a single line item within an order.
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// CartItem describes what the cashier rang up for one product.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the payload for creating a new order.
type CreateOrderRequest struct {
	Items         []CartItem `json:"items"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// UpdateOrderRequest replaces a pending order's items wholesale.
type UpdateOrderRequest struct {
	Items         []CartItem `json:"items"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// UpdateStatusRequest advances an order through its lifecycle.
type UpdateStatusRequest struct {
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// ProductSales is one row of the top-selling products report.
type ProductSales struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
}
