package settings

import (
	"context"
	"database/sql"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns the persistent settings backend. The schema
// guarantees exactly one row with id=1.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Get(ctx context.Context) (*Settings, error) {
	s := &Settings{}
	err := r.db.QueryRowContext(ctx, `
		SELECT store_name, currency, tax_enabled, tax_percent, receipt_footer, low_stock_level, updated_at
		FROM settings WHERE id=1`).
		Scan(&s.StoreName, &s.Currency, &s.TaxEnabled, &s.TaxPercent,
			&s.ReceiptFooter, &s.LowStockLevel, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sqliteRepo) Save(ctx context.Context, s *Settings) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE settings
		SET store_name=?, currency=?, tax_enabled=?, tax_percent=?,
		    receipt_footer=?, low_stock_level=?, updated_at=?
		WHERE id=1`,
		s.StoreName, s.Currency, s.TaxEnabled, s.TaxPercent,
		s.ReceiptFooter, s.LowStockLevel, s.UpdatedAt)
	return err
}
