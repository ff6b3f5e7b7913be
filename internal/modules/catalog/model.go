package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an item for sale. Stock is the live on-hand quantity; the
// order module is the only other writer of it.
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
	Barcode   string          `json:"barcode,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateProductRequest holds the data for creating a product.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
	Barcode  string          `json:"barcode,omitempty"`
}

// UpdateProductRequest carries a partial update. Nil fields are untouched.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Cost     *decimal.Decimal `json:"cost,omitempty"`
	Stock    *int             `json:"stock,omitempty"`
	Category *string          `json:"category,omitempty"`
	Barcode  *string          `json:"barcode,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

// ListFilter narrows List results.
type ListFilter struct {
	Category   string
	ActiveOnly bool
	Search     string
}
