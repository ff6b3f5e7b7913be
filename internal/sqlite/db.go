package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the local database file, enables foreign keys and
// bootstraps the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// A single writer keeps SQLite happy on a desktop deployment.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			id              INTEGER PRIMARY KEY CHECK (id = 1),
			store_name      TEXT NOT NULL DEFAULT 'MartPOS',
			currency        TEXT NOT NULL DEFAULT 'ZMW',
			tax_enabled     INTEGER NOT NULL DEFAULT 0,
			tax_percent     TEXT NOT NULL DEFAULT '0',
			receipt_footer  TEXT NOT NULL DEFAULT '',
			low_stock_level INTEGER NOT NULL DEFAULT 5,
			updated_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`INSERT OR IGNORE INTO settings (id) VALUES (1)`,

		`CREATE TABLE IF NOT EXISTS products (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			price      TEXT NOT NULL,
			cost       TEXT NOT NULL DEFAULT '0',
			stock      INTEGER NOT NULL DEFAULT 0,
			category   TEXT NOT NULL DEFAULT '',
			barcode    TEXT,
			is_active  INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_barcode
			ON products (barcode) WHERE barcode IS NOT NULL AND barcode != ''`,

		`CREATE TABLE IF NOT EXISTS customers (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			phone      TEXT NOT NULL DEFAULT '',
			email      TEXT NOT NULL DEFAULT '',
			address    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name     TEXT NOT NULL DEFAULT '',
			role          TEXT NOT NULL DEFAULT 'cashier',
			is_active     INTEGER NOT NULL DEFAULT 1,
			created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id             TEXT PRIMARY KEY,
			status         TEXT NOT NULL DEFAULT 'pending',
			subtotal       TEXT NOT NULL,
			tax            TEXT NOT NULL,
			total          TEXT NOT NULL,
			payment_method TEXT,
			notes          TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMP NOT NULL,
			updated_at     TIMESTAMP NOT NULL,
			completed_at   TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at)`,

		`CREATE TABLE IF NOT EXISTS order_items (
			id           TEXT PRIMARY KEY,
			order_id     TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id   TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity     INTEGER NOT NULL,
			unit_price   TEXT NOT NULL,
			total_price  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
