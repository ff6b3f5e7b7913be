package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/twalumbu/martpos/internal/apperr"
	"github.com/twalumbu/martpos/internal/modules/catalog"
	"github.com/twalumbu/martpos/internal/modules/settings"
)

// Catalog is the slice of the product catalog the order lifecycle needs.
// Stock must reflect the latest committed value on every GetProduct call.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	SetStock(ctx context.Context, id string, stock int) error
}

// TaxCalculator computes tax and total from a subtotal using the settings
// committed at call time.
type TaxCalculator interface {
	CalculateTotalWithTax(ctx context.Context, subtotal decimal.Decimal) (settings.TaxBreakdown, error)
}

// Service is the single authority for order persistence and the order/stock
// consistency rule: stock is deducted exactly once per order's committed
// lifetime and restored exactly once when that commitment is reversed.
type Service interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	ListOrdersByStatus(ctx context.Context, status string) ([]*Order, error)
	ListOrdersByDateRange(ctx context.Context, from, to time.Time) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
	UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error)
	DeleteOrder(ctx context.Context, id string) error
	TotalSales(ctx context.Context) (decimal.Decimal, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}

type service struct {
	repo    Repository
	catalog Catalog
	tax     TaxCalculator
}

// NewService creates a new order service.
func NewService(repo Repository, cat Catalog, tax TaxCalculator) Service {
	return &service{repo: repo, catalog: cat, tax: tax}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}
	method, err := parsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// Stock is only checked here. Nothing is deducted while the order is
	// pending; deduction happens on the transition into paid/completed.
	items, subtotal, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.tax.CalculateTotalWithTax(ctx, subtotal)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &Order{
		ID:            uuid.New(),
		Items:         items,
		Subtotal:      subtotal,
		Tax:           breakdown.Tax,
		Total:         breakdown.Total,
		Status:        StatusPending,
		PaymentMethod: method,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range o.Items {
		item.OrderID = o.ID
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apperr.Infrastructure("failed to create order", err)
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return nil, apperr.NotFound("order %s not found", id)
		}
		return nil, apperr.Infrastructure("failed to load order", err)
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Infrastructure("failed to list orders", err)
	}
	return orders, nil
}

func (s *service) ListOrdersByStatus(ctx context.Context, status string) ([]*Order, error) {
	st := OrderStatus(strings.ToLower(status))
	if !st.Valid() {
		return nil, apperr.Validation("unknown order status: %s", status)
	}
	orders, err := s.repo.ListByStatus(ctx, st)
	if err != nil {
		return nil, apperr.Infrastructure("failed to list orders", err)
	}
	return orders, nil
}

func (s *service) ListOrdersByDateRange(ctx context.Context, from, to time.Time) ([]*Order, error) {
	if !to.After(from) {
		return nil, apperr.Validation("date range end must be after start")
	}
	orders, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, apperr.Infrastructure("failed to list orders", err)
	}
	return orders, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	newStatus := OrderStatus(strings.ToLower(req.Status))
	if !newStatus.Valid() {
		return nil, apperr.Validation("unknown order status: %s", req.Status)
	}
	method, err := parsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == newStatus {
		return o, nil
	}
	// Reopening a cancelled order is not a defined transition.
	if o.Status == StatusCancelled {
		return nil, apperr.InvalidState("cannot change status of a cancelled order")
	}

	switch {
	case !o.Status.Deducted() && newStatus.Deducted():
		// Commit: deduct before the status write, all or nothing. A failure
		// here leaves both the order and the catalog untouched.
		if err := s.deductStock(ctx, o.Items); err != nil {
			return nil, err
		}
	case o.Status.Deducted() && !newStatus.Deducted():
		// Reversal: restore is best-effort and must never block the status
		// change. Failures are logged only.
		s.restoreStock(ctx, o.Items)
	}

	o.Status = newStatus
	if method != "" {
		o.PaymentMethod = method
	}
	now := time.Now().UTC()
	o.UpdatedAt = now
	if newStatus.Deducted() {
		o.CompletedAt = &now
	}

	if err := s.repo.UpdateHeader(ctx, o); err != nil {
		return nil, apperr.Infrastructure("failed to update order status", err)
	}
	return o, nil
}

func (s *service) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		return nil, apperr.InvalidState("can only update pending orders")
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}
	method, err := parsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// Nothing has been deducted for a pending order, so the new item list
	// is validated against current stock as-is.
	items, subtotal, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.tax.CalculateTotalWithTax(ctx, subtotal)
	if err != nil {
		return nil, err
	}

	o.Items = items
	for _, item := range o.Items {
		item.OrderID = o.ID
	}
	o.Subtotal = subtotal
	o.Tax = breakdown.Tax
	o.Total = breakdown.Total
	if method != "" {
		o.PaymentMethod = method
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}
	o.UpdatedAt = time.Now().UTC()

	if err := s.repo.ReplaceItems(ctx, o); err != nil {
		return nil, apperr.Infrastructure("failed to update order", err)
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id string) error {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	// A deducted order gives its stock back before the rows disappear.
	if o.Status.Deducted() {
		s.restoreStock(ctx, o.Items)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Infrastructure("failed to delete order", err)
	}
	return nil
}

func (s *service) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.repo.TotalSales(ctx)
	if err != nil {
		return decimal.Zero, apperr.Infrastructure("failed to compute total sales", err)
	}
	return total, nil
}

func (s *service) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}
	top, err := s.repo.TopProducts(ctx, limit)
	if err != nil {
		return nil, apperr.Infrastructure("failed to compute top products", err)
	}
	return top, nil
}

// buildItems validates the cart against the live catalog and snapshots name
// and unit price into order items. The subtotal is the exact sum of line
// totals.
func (s *service) buildItems(ctx context.Context, cart []CartItem) ([]*OrderItem, decimal.Decimal, error) {
	items := make([]*OrderItem, 0, len(cart))
	subtotal := decimal.Zero
	requested := map[string]int{}

	for _, ci := range cart {
		if ci.Quantity <= 0 {
			return nil, decimal.Zero, apperr.Validation("quantity must be greater than zero for product %s", ci.ProductID)
		}
		p, err := s.catalog.GetProduct(ctx, ci.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if !p.IsActive {
			return nil, decimal.Zero, apperr.Validation("product %s is not active", p.Name)
		}
		// The same product may appear on more than one line; the check is
		// against the summed quantity.
		requested[ci.ProductID] += ci.Quantity
		if p.Stock < requested[ci.ProductID] {
			return nil, decimal.Zero, apperr.InsufficientStock(p.Name, p.Stock, requested[ci.ProductID])
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, &OrderItem{
			ID:          uuid.New(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    ci.Quantity,
			UnitPrice:   p.Price,
			TotalPrice:  lineTotal,
		})
	}
	return items, subtotal, nil
}

// deductStock commits the order's quantities against live stock. It runs in
// two passes: validate every line against the catalog first, then write.
// This keeps a mid-loop insufficiency from leaving earlier products already
// decremented.
func (s *service) deductStock(ctx context.Context, items []*OrderItem) error {
	type deduction struct {
		id       string
		newStock int
	}

	need := map[string]int{}
	plan := make([]deduction, 0, len(items))
	for _, item := range items {
		pid := item.ProductID.String()
		first := need[pid] == 0
		need[pid] += item.Quantity

		// Live state, not the order's snapshot.
		p, err := s.catalog.GetProduct(ctx, pid)
		if err != nil {
			return err
		}
		if p.Stock < need[pid] {
			return apperr.InsufficientStock(p.Name, p.Stock, need[pid])
		}
		if first {
			plan = append(plan, deduction{id: pid, newStock: p.Stock - need[pid]})
		} else {
			for i := range plan {
				if plan[i].id == pid {
					plan[i].newStock = p.Stock - need[pid]
				}
			}
		}
	}

	for _, d := range plan {
		if err := s.catalog.SetStock(ctx, d.id, d.newStock); err != nil {
			return err
		}
	}
	return nil
}

// restoreStock adds the order's quantities back to the catalog. Best-effort
// only: a product deleted in the meantime is skipped silently, any other
// failure is logged and skipped. The caller's status change proceeds
// regardless.
func (s *service) restoreStock(ctx context.Context, items []*OrderItem) {
	for _, item := range items {
		pid := item.ProductID.String()
		p, err := s.catalog.GetProduct(ctx, pid)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				continue
			}
			zap.S().Warnw("stock restoration skipped", "product_id", pid, "err", err)
			continue
		}
		if err := s.catalog.SetStock(ctx, pid, p.Stock+item.Quantity); err != nil {
			zap.S().Warnw("stock restoration failed", "product_id", pid, "quantity", item.Quantity, "err", err)
		}
	}
}

func parsePaymentMethod(raw string) (PaymentMethod, error) {
	if raw == "" {
		return "", nil
	}
	method := PaymentMethod(strings.ToLower(raw))
	if !method.Valid() {
		return "", apperr.Validation("invalid payment method: %s (allowed: cash, card, transfer)", raw)
	}
	return method, nil
}
