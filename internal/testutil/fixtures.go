package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/shopspring/decimal"
)

// Product options
type ProductOption func(*domain.Product)

func WithDescription(d string) ProductOption {
	return func(p *domain.Product) {
		p.Description = d
	}
}

func NewTestProduct(sku string, opts ...ProductOption) *domain.Product {
	now := time.Now().UTC()
	p := &domain.Product{
		ID:          uuid.New().String(),
		SKU:         domain.NormalizeSKU(sku),
		Description: "Test product " + sku,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestLocalRule(local, sku, supplier string) *domain.LocalRule {
	now := time.Now().UTC()
	return &domain.LocalRule{
		ID:        uuid.New().String(),
		Local:     local,
		SKU:       domain.NormalizeSKU(sku),
		Supplier:  domain.NormalizeSupplierCode(supplier),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestStockBlock(sku, supplier string) *domain.StockBlock {
	now := time.Now().UTC()
	return &domain.StockBlock{
		ID:        uuid.New().String(),
		SKU:       domain.NormalizeSKU(sku),
		Supplier:  domain.NormalizeSupplierCode(supplier),
		Reason:    "test block",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OrderLine options
type LineOption func(*domain.OrderLine)

func WithSupplier(code string) LineOption {
	return func(l *domain.OrderLine) {
		l.Supplier = code
	}
}

func WithQty(qty string) LineOption {
	return func(l *domain.OrderLine) {
		l.Qty = decimal.RequireFromString(qty)
	}
}

func WithSourceFile(name string) LineOption {
	return func(l *domain.OrderLine) {
		l.SourceFile = name
	}
}

func NewTestLine(local, sku string, opts ...LineOption) domain.OrderLine {
	l := domain.OrderLine{
		Local:      local,
		SKU:        domain.NormalizeSKU(sku),
		Qty:        decimal.NewFromInt(1),
		CostCenter: "CC1",
		PlaceName:  "PLANTA NORTE",
		SourceFile: "orders.xlsx",
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}
