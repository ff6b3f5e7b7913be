package order

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twalumbu/martpos/internal/sqlite"
)

func newSQLiteRepo(t *testing.T) Repository {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db)
}

func sampleOrder() *Order {
	now := time.Now().UTC()
	o := &Order{
		ID:            uuid.New(),
		Subtotal:      decimal.RequireFromString("7.50"),
		Tax:           decimal.RequireFromString("0.75"),
		Total:         decimal.RequireFromString("8.25"),
		Status:        StatusPending,
		PaymentMethod: PaymentCash,
		Notes:         "walk-in",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.Items = []*OrderItem{{
		ID:          uuid.New(),
		OrderID:     o.ID,
		ProductID:   uuid.New(),
		ProductName: "Coffee",
		Quantity:    3,
		UnitPrice:   decimal.RequireFromString("2.50"),
		TotalPrice:  decimal.RequireFromString("7.50"),
	}}
	return o
}

func TestSQLiteRepeatedReadsAreIdentical(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	o := sampleOrder()
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := repo.GetByID(ctx, o.ID.String())
	if err != nil {
		t.Fatalf("first GetByID: %v", err)
	}
	second, err := repo.GetByID(ctx, o.ID.String())
	if err != nil {
		t.Fatalf("second GetByID: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reads differ:\nfirst  %+v\nsecond %+v", first, second)
	}
	if len(first.Items) != 1 || first.Items[0].ProductName != "Coffee" {
		t.Fatalf("items not round-tripped: %+v", first.Items)
	}
	if !first.Total.Equal(o.Total) {
		t.Fatalf("total = %s, want %s", first.Total, o.Total)
	}
}
