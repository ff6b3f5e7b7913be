package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns the persistent order backend.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

const orderColumns = `id, status, subtotal, tax, total, payment_method, notes, created_at, updated_at, completed_at`

// Create inserts the order and all its items inside a single transaction;
// a failed item insert rolls the header back.
func (r *sqliteRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		o.ID.String(), o.Status, o.Subtotal, o.Tax, o.Total,
		nullableMethod(o.PaymentMethod), o.Notes, o.CreatedAt, o.UpdatedAt, o.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if err := insertItems(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sqliteRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=?`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID.String())
	return o, err
}

func (r *sqliteRepo) List(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *sqliteRepo) ListByStatus(ctx context.Context, status OrderStatus) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status=? ORDER BY created_at DESC`, status)
}

func (r *sqliteRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at DESC`, from, to)
}

func (r *sqliteRepo) UpdateHeader(ctx context.Context, o *Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status=?, subtotal=?, tax=?, total=?, payment_method=?, notes=?, updated_at=?, completed_at=?
		WHERE id=?`,
		o.Status, o.Subtotal, o.Tax, o.Total, nullableMethod(o.PaymentMethod),
		o.Notes, o.UpdatedAt, o.CompletedAt, o.ID.String())
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sqliteRepo) ReplaceItems(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET subtotal=?, tax=?, total=?, payment_method=?, notes=?, updated_at=?
		WHERE id=?`,
		o.Subtotal, o.Tax, o.Total, nullableMethod(o.PaymentMethod),
		o.Notes, o.UpdatedAt, o.ID.String())
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=?`, o.ID.String()); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sqliteRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id=?`, id)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sqliteRepo) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, `
		SELECT SUM(total) FROM orders WHERE status IN ('paid','completed')`).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *sqliteRepo) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.product_id, oi.product_name, SUM(oi.quantity) AS qty
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status IN ('paid','completed')
		GROUP BY oi.product_id, oi.product_name
		ORDER BY qty DESC, oi.product_name
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductSales
	for rows.Next() {
		var ps ProductSales
		var pid string
		if err := rows.Scan(&pid, &ps.ProductName, &ps.Quantity); err != nil {
			return nil, err
		}
		if ps.ProductID, err = uuid.Parse(pid); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// ── helpers ──────────────────────────────────────────────────────────────────

func insertItems(ctx context.Context, tx *sql.Tx, o *Order) error {
	for _, item := range o.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, total_price)
			VALUES (?,?,?,?,?,?,?)`,
			item.ID.String(), o.ID.String(), item.ProductID.String(),
			item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}
	return nil
}

func scanOrder(scan func(...interface{}) error) (*Order, error) {
	o := &Order{}
	var id string
	var method sql.NullString
	var completedAt sql.NullTime
	err := scan(&id, &o.Status, &o.Subtotal, &o.Tax, &o.Total,
		&method, &o.Notes, &o.CreatedAt, &o.UpdatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if o.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	o.PaymentMethod = PaymentMethod(method.String)
	if completedAt.Valid {
		t := completedAt.Time
		o.CompletedAt = &t
	}
	return o, nil
}

func (r *sqliteRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID.String()); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *sqliteRepo) listItems(ctx context.Context, orderID string) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, total_price
		FROM order_items WHERE order_id=? ORDER BY rowid`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		item := &OrderItem{}
		var id, oid, pid string
		if err := rows.Scan(&id, &oid, &pid, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, err
		}
		if item.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if item.OrderID, err = uuid.Parse(oid); err != nil {
			return nil, err
		}
		if item.ProductID, err = uuid.Parse(pid); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableMethod(m PaymentMethod) interface{} {
	if m == "" {
		return nil
	}
	return string(m)
}
