package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single store-wide configuration row.
type Settings struct {
	StoreName     string          `json:"store_name"`
	Currency      string          `json:"currency"`
	TaxEnabled    bool            `json:"tax_enabled"`
	TaxPercent    decimal.Decimal `json:"tax_percent"`
	ReceiptFooter string          `json:"receipt_footer"`
	LowStockLevel int             `json:"low_stock_level"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TaxBreakdown is the result of applying the configured tax to a subtotal.
type TaxBreakdown struct {
	Tax   decimal.Decimal `json:"tax"`
	Total decimal.Decimal `json:"total"`
}

// UpdateRequest carries the editable settings fields. Pointer fields are
// left untouched when nil.
type UpdateRequest struct {
	StoreName     *string          `json:"store_name,omitempty"`
	Currency      *string          `json:"currency,omitempty"`
	TaxEnabled    *bool            `json:"tax_enabled,omitempty"`
	TaxPercent    *decimal.Decimal `json:"tax_percent,omitempty"`
	ReceiptFooter *string          `json:"receipt_footer,omitempty"`
	LowStockLevel *int             `json:"low_stock_level,omitempty"`
}
