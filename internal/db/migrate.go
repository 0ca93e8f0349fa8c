package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent schema statements, re-run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		sku         TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku)`,

	`CREATE TABLE IF NOT EXISTS local_rules (
		id          TEXT PRIMARY KEY,
		local       TEXT NOT NULL,
		sku         TEXT NOT NULL,
		supplier    TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(local, sku)
	)`,

	`CREATE TABLE IF NOT EXISTS stock_blocks (
		id         TEXT PRIMARY KEY,
		sku        TEXT NOT NULL,
		supplier   TEXT NOT NULL,
		reason     TEXT NOT NULL DEFAULT '',
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(sku, supplier)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_blocks_sku ON stock_blocks(sku)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
