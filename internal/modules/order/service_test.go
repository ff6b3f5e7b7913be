package order

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/twalumbu/martpos/internal/apperr"
	"github.com/twalumbu/martpos/internal/modules/catalog"
	"github.com/twalumbu/martpos/internal/modules/settings"
)

type fixture struct {
	orders   Service
	catalog  catalog.Service
	settings settings.Service
}

// newFixture wires the order service against in-memory backends with a
// 10% tax rate.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalogSvc := catalog.NewService(catalog.NewMemoryRepository())
	settingsSvc := settings.NewService(settings.NewMemoryRepository())

	enabled := true
	pct := decimal.NewFromInt(10)
	if _, err := settingsSvc.Update(context.Background(), settings.UpdateRequest{
		TaxEnabled: &enabled,
		TaxPercent: &pct,
	}); err != nil {
		t.Fatalf("enable tax: %v", err)
	}

	return &fixture{
		orders:   NewService(NewMemoryRepository(), catalogSvc, settingsSvc),
		catalog:  catalogSvc,
		settings: settingsSvc,
	}
}

func (f *fixture) addProduct(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), catalog.CreateProductRequest{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	})
	if err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return p
}

func (f *fixture) stockOf(t *testing.T, id string) int {
	t.Helper()
	p, err := f.catalog.GetProduct(context.Background(), id)
	if err != nil {
		t.Fatalf("get product %s: %v", id, err)
	}
	return p.Stock
}

func mustEqual(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestCreateOrderComputesTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Coffee", "2.50", 10)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items:         []CartItem{{ProductID: p.ID.String(), Quantity: 3}},
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	mustEqual(t, o.Subtotal, "7.50")
	mustEqual(t, o.Tax, "0.75")
	mustEqual(t, o.Total, "8.25")
	if o.Status != StatusPending {
		t.Fatalf("status = %s, want pending", o.Status)
	}
	if o.CompletedAt != nil {
		t.Fatal("pending order must not have a completion time")
	}
	// Creation checks stock but never touches it.
	if got := f.stockOf(t, p.ID.String()); got != 10 {
		t.Fatalf("stock = %d, want 10", got)
	}
	if o.Items[0].ProductName != "Coffee" {
		t.Fatalf("product name not snapshotted: %q", o.Items[0].ProductName)
	}
}

func TestCreateOrderEmptyItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orders.CreateOrder(ctx, CreateOrderRequest{})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
	orders, err := f.orders.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("rejected order was persisted, %d orders listed", len(orders))
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Milk", "1.00", 2)

	_, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 5}},
	})
	if apperr.KindOf(err) != apperr.KindInsufficientStock {
		t.Fatalf("err = %v, want insufficient stock", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "Available: 2, Requested: 5") {
		t.Fatalf("message %q should name available and requested quantities", msg)
	}
}

func TestCreateOrderDuplicateLinesAggregated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Bread", "1.00", 5)

	// Two lines of 3 exceed the stock of 5 even though each line alone fits.
	_, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{
			{ProductID: p.ID.String(), Quantity: 3},
			{ProductID: p.ID.String(), Quantity: 3},
		},
	})
	if apperr.KindOf(err) != apperr.KindInsufficientStock {
		t.Fatalf("err = %v, want insufficient stock", err)
	}
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Discontinued", "4.00", 10)
	inactive := false
	if _, err := f.catalog.UpdateProduct(ctx, p.ID.String(), catalog.UpdateProductRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate product: %v", err)
	}

	_, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 1}},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestStatusLifecycleConservesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Tea", "3.00", 10)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	paid, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "paid", PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("pending -> paid: %v", err)
	}
	if got := f.stockOf(t, p.ID.String()); got != 7 {
		t.Fatalf("stock after paid = %d, want 7", got)
	}
	if paid.CompletedAt == nil {
		t.Fatal("paid order should carry a completion time")
	}
	if paid.PaymentMethod != PaymentCard {
		t.Fatalf("payment method = %s, want card", paid.PaymentMethod)
	}

	if _, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "cancelled"}); err != nil {
		t.Fatalf("paid -> cancelled: %v", err)
	}
	if got := f.stockOf(t, p.ID.String()); got != 10 {
		t.Fatalf("stock after cancel = %d, want 10", got)
	}
}

func TestPaidToCompletedDeductsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Sugar", "2.00", 10)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "paid"}); err != nil {
		t.Fatalf("pending -> paid: %v", err)
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "completed"}); err != nil {
		t.Fatalf("paid -> completed: %v", err)
	}
	if got := f.stockOf(t, p.ID.String()); got != 6 {
		t.Fatalf("stock = %d, want 6 (single deduction)", got)
	}
}

func TestSameStatusIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Salt", "0.50", 10)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	got, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "pending"})
	if err != nil {
		t.Fatalf("pending -> pending: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("status = %s, want pending", got.Status)
	}
	if stock := f.stockOf(t, p.ID.String()); stock != 10 {
		t.Fatalf("stock = %d, want 10", stock)
	}
}

func TestCancelledOrdersAreTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Rice", "5.00", 10)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "cancelled"}); err != nil {
		t.Fatalf("pending -> cancelled: %v", err)
	}
	_, err = f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "paid"})
	if apperr.KindOf(err) != apperr.KindInvalidState {
		t.Fatalf("err = %v, want invalid state", err)
	}
}

func TestStatusChangeFailsWhenStockRanOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Butter", "6.00", 5)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	// Stock drained while the order sat pending.
	if err := f.catalog.SetStock(ctx, p.ID.String(), 1); err != nil {
		t.Fatalf("SetStock: %v", err)
	}

	_, err = f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "paid"})
	if apperr.KindOf(err) != apperr.KindInsufficientStock {
		t.Fatalf("err = %v, want insufficient stock", err)
	}
	// The failure leaves both sides untouched.
	reloaded, err := f.orders.GetOrder(ctx, o.ID.String())
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if reloaded.Status != StatusPending {
		t.Fatalf("status = %s, want pending", reloaded.Status)
	}
	if got := f.stockOf(t, p.ID.String()); got != 1 {
		t.Fatalf("stock = %d, want 1", got)
	}
}

func TestUpdateOrderPendingOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Eggs", "4.00", 20)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "paid"}); err != nil {
		t.Fatalf("pending -> paid: %v", err)
	}

	_, err = f.orders.UpdateOrder(ctx, o.ID.String(), UpdateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 9}},
	})
	if apperr.KindOf(err) != apperr.KindInvalidState {
		t.Fatalf("err = %v, want invalid state", err)
	}
	reloaded, err := f.orders.GetOrder(ctx, o.ID.String())
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if reloaded.Items[0].Quantity != 2 {
		t.Fatalf("items changed on a non-pending order, quantity = %d", reloaded.Items[0].Quantity)
	}
}

func TestUpdateOrderRecalculatesTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coffee := f.addProduct(t, "Coffee", "2.50", 10)
	cake := f.addProduct(t, "Cake", "10.00", 10)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: coffee.ID.String(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	notes := "birthday"
	updated, err := f.orders.UpdateOrder(ctx, o.ID.String(), UpdateOrderRequest{
		Items: []CartItem{
			{ProductID: coffee.ID.String(), Quantity: 2},
			{ProductID: cake.ID.String(), Quantity: 1},
		},
		Notes: &notes,
	})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	mustEqual(t, updated.Subtotal, "15.00")
	mustEqual(t, updated.Tax, "1.50")
	mustEqual(t, updated.Total, "16.50")
	if updated.Notes != "birthday" {
		t.Fatalf("notes = %q", updated.Notes)
	}
	if len(updated.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(updated.Items))
	}
}

func TestDeleteOrderRestoresDeductedStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Juice", "3.00", 10)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "completed"}); err != nil {
		t.Fatalf("pending -> completed: %v", err)
	}
	if got := f.stockOf(t, p.ID.String()); got != 6 {
		t.Fatalf("stock = %d, want 6", got)
	}

	if err := f.orders.DeleteOrder(ctx, o.ID.String()); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if got := f.stockOf(t, p.ID.String()); got != 10 {
		t.Fatalf("stock after delete = %d, want 10", got)
	}
	if _, err := f.orders.GetOrder(ctx, o.ID.String()); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDeletePendingOrderLeavesStockAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Water", "1.00", 10)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if err := f.orders.DeleteOrder(ctx, o.ID.String()); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if got := f.stockOf(t, p.ID.String()); got != 10 {
		t.Fatalf("stock = %d, want 10", got)
	}
}

func TestListByStatusAndDateRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Soap", "2.00", 50)

	first, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{{ProductID: p.ID.String(), Quantity: 2}},
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, first.ID.String(), UpdateStatusRequest{Status: "paid"}); err != nil {
		t.Fatalf("pending -> paid: %v", err)
	}

	paid, err := f.orders.ListOrdersByStatus(ctx, "paid")
	if err != nil {
		t.Fatalf("ListOrdersByStatus: %v", err)
	}
	if len(paid) != 1 || paid[0].ID != first.ID {
		t.Fatalf("paid orders = %d", len(paid))
	}

	if _, err := f.orders.ListOrdersByStatus(ctx, "shipped"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("unknown status should be rejected, err = %v", err)
	}

	now := time.Now().UTC()
	inRange, err := f.orders.ListOrdersByDateRange(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListOrdersByDateRange: %v", err)
	}
	if len(inRange) != 2 {
		t.Fatalf("orders in range = %d, want 2", len(inRange))
	}
	empty, err := f.orders.ListOrdersByDateRange(ctx, now.Add(-2*time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("ListOrdersByDateRange: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("orders in empty range = %d, want 0", len(empty))
	}
	if _, err := f.orders.ListOrdersByDateRange(ctx, now, now); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("degenerate range should be rejected, err = %v", err)
	}
}

func TestTotalSalesCountsDeductedOrdersOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Pen", "2.00", 100)

	makeOrder := func(qty int, status string) {
		t.Helper()
		o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
			Items: []CartItem{{ProductID: p.ID.String(), Quantity: qty}},
		})
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		if status != "pending" {
			if _, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: status}); err != nil {
				t.Fatalf("-> %s: %v", status, err)
			}
		}
	}

	makeOrder(1, "paid")      // total 2.20
	makeOrder(2, "completed") // total 4.40
	makeOrder(3, "pending")
	makeOrder(4, "cancelled")

	total, err := f.orders.TotalSales(ctx)
	if err != nil {
		t.Fatalf("TotalSales: %v", err)
	}
	mustEqual(t, total, "6.60")
}

func TestTopProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pen := f.addProduct(t, "Pen", "2.00", 100)
	book := f.addProduct(t, "Book", "8.00", 100)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items: []CartItem{
			{ProductID: pen.ID.String(), Quantity: 5},
			{ProductID: book.ID.String(), Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := f.orders.UpdateOrderStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "completed"}); err != nil {
		t.Fatalf("-> completed: %v", err)
	}

	top, err := f.orders.TopProducts(ctx, 0)
	if err != nil {
		t.Fatalf("TopProducts: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("rows = %d, want 2", len(top))
	}
	if top[0].ProductName != "Pen" || top[0].Quantity != 5 {
		t.Fatalf("top seller = %+v, want Pen x5", top[0])
	}
}

func TestGetOrderRepeatedReadsAreIdentical(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Honey", "4.25", 10)

	o, err := f.orders.CreateOrder(ctx, CreateOrderRequest{
		Items:         []CartItem{{ProductID: p.ID.String(), Quantity: 2}},
		PaymentMethod: "cash",
		Notes:         "walk-in",
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	first, err := f.orders.GetOrder(ctx, o.ID.String())
	if err != nil {
		t.Fatalf("first GetOrder: %v", err)
	}
	second, err := f.orders.GetOrder(ctx, o.ID.String())
	if err != nil {
		t.Fatalf("second GetOrder: %v", err)
	}
	// Reads with no write in between are identical down to items and
	// timestamps.
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reads differ:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestGetOrderUnknownID(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders.GetOrder(context.Background(), "no-such-order")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}
