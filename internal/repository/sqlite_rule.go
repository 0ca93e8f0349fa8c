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

// SQLiteRuleRepo implements RuleRepo over the reference database. Inactive
// rows are kept for the editors but never consulted by the lookup methods
// the pipeline uses.
type SQLiteRuleRepo struct {
	db *sql.DB
}

func NewSQLiteRuleRepo(db *sql.DB) *SQLiteRuleRepo {
	return &SQLiteRuleRepo{db: db}
}

func (r *SQLiteRuleRepo) UpsertLocalRule(ctx context.Context, rule *domain.LocalRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	rule.Local = domain.NormalizeSupplierCode(rule.Local)
	rule.SKU = domain.NormalizeSKU(rule.SKU)
	rule.Supplier = domain.NormalizeSupplierCode(rule.Supplier)
	if rule.Local == "" || rule.SKU == "" || rule.Supplier == "" {
		return fmt.Errorf("local, SKU, and supplier are all required")
	}
	now := time.Now().UTC()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now

	query := `INSERT INTO local_rules (id, local, sku, supplier, description, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(local, sku) DO UPDATE SET
			supplier = excluded.supplier,
			description = excluded.description,
			active = excluded.active,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.Local, rule.SKU, rule.Supplier, rule.Description,
		boolToInt(rule.Active),
		rule.CreatedAt.Format(time.RFC3339),
		rule.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting local rule: %w", err)
	}
	return nil
}

func (r *SQLiteRuleRepo) DeleteLocalRule(ctx context.Context, local, sku string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM local_rules WHERE local = ? AND sku = ?`,
		domain.NormalizeSupplierCode(local), domain.NormalizeSKU(sku))
	if err != nil {
		return false, fmt.Errorf("deleting local rule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting local rule: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRuleRepo) ListLocalRules(ctx context.Context) ([]*domain.LocalRule, error) {
	query := `SELECT id, local, sku, supplier, description, active, created_at, updated_at
		FROM local_rules ORDER BY local, sku`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing local rules: %w", err)
	}
	defer rows.Close()

	var rules []*domain.LocalRule
	for rows.Next() {
		var rule domain.LocalRule
		var active int
		var createdStr, updatedStr string
		if err := rows.Scan(&rule.ID, &rule.Local, &rule.SKU, &rule.Supplier,
			&rule.Description, &active, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning local rule: %w", err)
		}
		rule.Active = active != 0
		if rule.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing local rule created_at: %w", err)
		}
		if rule.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
			return nil, fmt.Errorf("parsing local rule updated_at: %w", err)
		}
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating local rules: %w", err)
	}
	return rules, nil
}

func (r *SQLiteRuleRepo) ForcedSupplier(ctx context.Context, local, sku string) (string, error) {
	query := `SELECT supplier FROM local_rules WHERE local = ? AND sku = ? AND active = 1`
	var supplier string
	err := r.db.QueryRowContext(ctx, query,
		domain.NormalizeSupplierCode(local), domain.NormalizeSKU(sku)).Scan(&supplier)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up forced supplier: %w", err)
	}
	return supplier, nil
}

func (r *SQLiteRuleRepo) UpsertStockBlock(ctx context.Context, b *domain.StockBlock) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.SKU = domain.NormalizeSKU(b.SKU)
	b.Supplier = domain.NormalizeSupplierCode(b.Supplier)
	if b.SKU == "" || b.Supplier == "" {
		return fmt.Errorf("SKU and supplier are both required")
	}
	if b.Reason == "" {
		b.Reason = "Stock-out"
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	query := `INSERT INTO stock_blocks (id, sku, supplier, reason, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sku, supplier) DO UPDATE SET
			reason = excluded.reason,
			active = excluded.active,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.SKU, b.Supplier, b.Reason,
		boolToInt(b.Active),
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting stock block: %w", err)
	}
	return nil
}

func (r *SQLiteRuleRepo) DeleteStockBlock(ctx context.Context, sku, supplier string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stock_blocks WHERE sku = ? AND supplier = ?`,
		domain.NormalizeSKU(sku), domain.NormalizeSupplierCode(supplier))
	if err != nil {
		return false, fmt.Errorf("deleting stock block: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting stock block: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRuleRepo) ListStockBlocks(ctx context.Context) ([]*domain.StockBlock, error) {
	query := `SELECT id, sku, supplier, reason, active, created_at, updated_at
		FROM stock_blocks ORDER BY sku, supplier`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing stock blocks: %w", err)
	}
	defer rows.Close()

	var blocks []*domain.StockBlock
	for rows.Next() {
		var b domain.StockBlock
		var active int
		var createdStr, updatedStr string
		if err := rows.Scan(&b.ID, &b.SKU, &b.Supplier, &b.Reason,
			&active, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning stock block: %w", err)
		}
		b.Active = active != 0
		if b.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing stock block created_at: %w", err)
		}
		if b.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
			return nil, fmt.Errorf("parsing stock block updated_at: %w", err)
		}
		blocks = append(blocks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock blocks: %w", err)
	}
	return blocks, nil
}

func (r *SQLiteRuleRepo) IsBlocked(ctx context.Context, sku, supplier string) (bool, error) {
	query := `SELECT COUNT(*) FROM stock_blocks WHERE sku = ? AND supplier = ? AND active = 1`
	var n int
	err := r.db.QueryRowContext(ctx, query,
		domain.NormalizeSKU(sku), domain.NormalizeSupplierCode(supplier)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking stock block: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRuleRepo) BlockedSuppliers(ctx context.Context, sku string) ([]string, error) {
	query := `SELECT supplier FROM stock_blocks WHERE sku = ? AND active = 1 ORDER BY supplier`
	rows, err := r.db.QueryContext(ctx, query, domain.NormalizeSKU(sku))
	if err != nil {
		return nil, fmt.Errorf("listing blocked suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning blocked supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocked suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *SQLiteRuleRepo) Stats(ctx context.Context) (RuleStats, error) {
	var stats RuleStats
	row := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM local_rules),
		(SELECT COUNT(*) FROM local_rules WHERE active = 1),
		(SELECT COUNT(*) FROM stock_blocks),
		(SELECT COUNT(*) FROM stock_blocks WHERE active = 1)`)
	if err := row.Scan(&stats.LocalRules, &stats.ActiveLocalRules,
		&stats.StockBlocks, &stats.ActiveStockBlocks); err != nil {
		return RuleStats{}, fmt.Errorf("collecting rule stats: %w", err)
	}
	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
