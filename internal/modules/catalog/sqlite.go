package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns the persistent product backend.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

const productColumns = `id, name, price, cost, stock, category, barcode, is_active, created_at, updated_at`

func (r *sqliteRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		p.ID.String(), p.Name, p.Price, p.Cost, p.Stock,
		p.Category, nullable(p.Barcode), p.IsActive, p.CreatedAt, p.UpdatedAt)
	return err
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var id string
	var barcode sql.NullString
	err := scan(&id, &p.Name, &p.Price, &p.Cost, &p.Stock,
		&p.Category, &barcode, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p.Barcode = barcode.String
	return p, nil
}

func (r *sqliteRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=?`, id)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *sqliteRepo) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE barcode=?`, barcode)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *sqliteRepo) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	if filter.Category != "" {
		query += ` AND category=?`
		args = append(args, filter.Category)
	}
	if filter.ActiveOnly {
		query += ` AND is_active=1`
	}
	if filter.Search != "" {
		query += ` AND (name LIKE ? OR barcode LIKE ?)`
		like := "%" + filter.Search + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY category, name`
	return r.queryProducts(ctx, query, args...)
}

func (r *sqliteRepo) ListLowStock(ctx context.Context, threshold int) ([]*Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active=1 AND stock <= ?
		ORDER BY stock ASC, name`, threshold)
}

func (r *sqliteRepo) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=?, price=?, cost=?, stock=?, category=?, barcode=?, is_active=?, updated_at=?
		WHERE id=?`,
		p.Name, p.Price, p.Cost, p.Stock, p.Category,
		nullable(p.Barcode), p.IsActive, p.UpdatedAt, p.ID.String())
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sqliteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sqliteRepo) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
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

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
