package settings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/twalumbu/martpos/internal/apperr"
)

func newTestService() Service {
	return NewService(NewMemoryRepository())
}

func TestCalculateTotalWithTaxDisabled(t *testing.T) {
	svc := newTestService()
	subtotal := decimal.RequireFromString("7.50")

	got, err := svc.CalculateTotalWithTax(context.Background(), subtotal)
	if err != nil {
		t.Fatalf("CalculateTotalWithTax: %v", err)
	}
	if !got.Tax.IsZero() {
		t.Fatalf("tax = %s, want 0", got.Tax)
	}
	if !got.Total.Equal(subtotal) {
		t.Fatalf("total = %s, want %s", got.Total, subtotal)
	}
}

func TestCalculateTotalWithTaxEnabled(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	enabled := true
	pct := decimal.NewFromInt(10)
	if _, err := svc.Update(ctx, UpdateRequest{TaxEnabled: &enabled, TaxPercent: &pct}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.CalculateTotalWithTax(ctx, decimal.RequireFromString("7.50"))
	if err != nil {
		t.Fatalf("CalculateTotalWithTax: %v", err)
	}
	if !got.Tax.Equal(decimal.RequireFromString("0.75")) {
		t.Fatalf("tax = %s, want 0.75", got.Tax)
	}
	if !got.Total.Equal(decimal.RequireFromString("8.25")) {
		t.Fatalf("total = %s, want 8.25", got.Total)
	}
}

func TestTaxRoundsToCents(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	enabled := true
	pct := decimal.RequireFromString("7.25")
	if _, err := svc.Update(ctx, UpdateRequest{TaxEnabled: &enabled, TaxPercent: &pct}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// 9.99 * 7.25% = 0.724275, rounds to 0.72.
	got, err := svc.CalculateTotalWithTax(ctx, decimal.RequireFromString("9.99"))
	if err != nil {
		t.Fatalf("CalculateTotalWithTax: %v", err)
	}
	if !got.Tax.Equal(decimal.RequireFromString("0.72")) {
		t.Fatalf("tax = %s, want 0.72", got.Tax)
	}
	if !got.Total.Equal(decimal.RequireFromString("10.71")) {
		t.Fatalf("total = %s, want 10.71", got.Total)
	}
}

func TestUpdateRejectsBadValues(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	over := decimal.NewFromInt(101)
	if _, err := svc.Update(ctx, UpdateRequest{TaxPercent: &over}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("tax percent over 100: err = %v, want validation", err)
	}
	negative := -1
	if _, err := svc.Update(ctx, UpdateRequest{LowStockLevel: &negative}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("negative low stock level: err = %v, want validation", err)
	}
}

func TestUpdateIsPartial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	name := "Corner Shop"
	updated, err := svc.Update(ctx, UpdateRequest{StoreName: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.StoreName != "Corner Shop" {
		t.Fatalf("store name = %q", updated.StoreName)
	}
	if updated.Currency != "ZMW" {
		t.Fatalf("currency changed unexpectedly: %q", updated.Currency)
	}
}
