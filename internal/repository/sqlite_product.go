package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lucasgnemmi/orderflow/internal/domain"
)

// SQLiteProductRepo implements ProductRepo over the reference database.
type SQLiteProductRepo struct {
	db *sql.DB
}

func NewSQLiteProductRepo(db *sql.DB) *SQLiteProductRepo {
	return &SQLiteProductRepo{db: db}
}

const productColumns = `id, sku, description, created_at, updated_at`

func (r *SQLiteProductRepo) Upsert(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.SKU = domain.NormalizeSKU(p.SKU)
	if p.SKU == "" {
		return fmt.Errorf("product SKU is required")
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	// Keep the original id and created_at when replacing an existing SKU.
	query := `INSERT INTO products (id, sku, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(sku) DO UPDATE SET
			description = excluded.description,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.SKU,
		p.Description,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting product: %w", err)
	}
	return nil
}

func (r *SQLiteProductRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = ?`
	row := r.db.QueryRowContext(ctx, query, domain.NormalizeSKU(sku))
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *SQLiteProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY sku`
	return r.queryProducts(ctx, query)
}

func (r *SQLiteProductRepo) Search(ctx context.Context, q string) ([]*domain.Product, error) {
	pattern := "%" + q + "%"
	query := `SELECT ` + productColumns + ` FROM products
		WHERE sku LIKE ? OR description LIKE ? COLLATE NOCASE
		ORDER BY sku`
	return r.queryProducts(ctx, query, pattern, pattern)
}

func (r *SQLiteProductRepo) Delete(ctx context.Context, sku string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE sku = ?`, domain.NormalizeSKU(sku))
	if err != nil {
		return false, fmt.Errorf("deleting product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting product: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteProductRepo) SKUSet(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sku FROM products`)
	if err != nil {
		return nil, fmt.Errorf("listing SKUs: %w", err)
	}
	defer rows.Close()

	skus := make(map[string]bool)
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("scanning SKU: %w", err)
		}
		skus[sku] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating SKUs: %w", err)
	}
	return skus, nil
}

func (r *SQLiteProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return n, nil
}

func (r *SQLiteProductRepo) BulkUpsert(ctx context.Context, products []*domain.Product) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting bulk upsert: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	query := `INSERT INTO products (id, sku, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(sku) DO UPDATE SET
			description = excluded.description,
			updated_at = excluded.updated_at`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("preparing bulk upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, p := range products {
		sku := domain.NormalizeSKU(p.SKU)
		if sku == "" {
			continue
		}
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx, id, sku, p.Description, now, now); err != nil {
			return 0, fmt.Errorf("bulk upserting %s: %w", sku, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing bulk upsert: %w", err)
	}
	committed = true
	return written, nil
}

func (r *SQLiteProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var createdStr, updatedStr string
	if err := row.Scan(&p.ID, &p.SKU, &p.Description, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning product: %w", err)
	}
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing product created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing product updated_at: %w", err)
	}
	return &p, nil
}
