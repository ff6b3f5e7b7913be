package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns the persistent customer backend.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

const customerColumns = `id, name, phone, email, address, created_at, updated_at`

func (r *sqliteRepo) Create(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES (?,?,?,?,?,?,?)`,
		c.ID.String(), c.Name, c.Phone, c.Email, c.Address, c.CreatedAt, c.UpdatedAt)
	return err
}

func scanCustomer(scan func(...interface{}) error) (*Customer, error) {
	c := &Customer{}
	var id string
	err := scan(&id, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.ID, err = uuid.Parse(id)
	return c, err
}

func (r *sqliteRepo) GetByID(ctx context.Context, id string) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=?`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *sqliteRepo) List(ctx context.Context, search string) ([]*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name LIKE ? OR phone LIKE ? OR email LIKE ?`
		like := "%" + search + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *sqliteRepo) Update(ctx context.Context, c *Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name=?, phone=?, email=?, address=?, updated_at=?
		WHERE id=?`,
		c.Name, c.Phone, c.Email, c.Address, c.UpdatedAt, c.ID.String())
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sqliteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
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
