package repository

import (
	"context"

	"github.com/lucasgnemmi/orderflow/internal/domain"
)

// RuleStats summarizes the override-rule tables for display.
type RuleStats struct {
	LocalRules        int
	ActiveLocalRules  int
	StockBlocks       int
	ActiveStockBlocks int
}

type ProductRepo interface {
	// Upsert inserts or replaces the product keyed by its normalized SKU.
	Upsert(ctx context.Context, p *domain.Product) error
	// GetBySKU returns nil (and no error) when the SKU is not in the master.
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, query string) ([]*domain.Product, error)
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, sku string) (bool, error)
	// SKUSet returns every SKU in the master for O(1) validation lookups.
	SKUSet(ctx context.Context) (map[string]bool, error)
	Count(ctx context.Context) (int, error)
	// BulkUpsert imports many products, returning how many were written.
	BulkUpsert(ctx context.Context, products []*domain.Product) (int, error)
}

type RuleRepo interface {
	UpsertLocalRule(ctx context.Context, r *domain.LocalRule) error
	DeleteLocalRule(ctx context.Context, local, sku string) (bool, error)
	ListLocalRules(ctx context.Context) ([]*domain.LocalRule, error)
	// ForcedSupplier returns the supplier forced for (local, sku) by an
	// active rule, or "" when no such rule exists.
	ForcedSupplier(ctx context.Context, local, sku string) (string, error)

	UpsertStockBlock(ctx context.Context, b *domain.StockBlock) error
	DeleteStockBlock(ctx context.Context, sku, supplier string) (bool, error)
	ListStockBlocks(ctx context.Context) ([]*domain.StockBlock, error)
	// IsBlocked consults active blocks only.
	IsBlocked(ctx context.Context, sku, supplier string) (bool, error)
	// BlockedSuppliers returns suppliers actively blocked for the SKU.
	BlockedSuppliers(ctx context.Context, sku string) ([]string, error)

	Stats(ctx context.Context) (RuleStats, error)
}
