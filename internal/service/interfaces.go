package service

import (
	"context"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/pipeline"
	"github.com/lucasgnemmi/orderflow/internal/repository"
)

type ScheduleService interface {
	UpsertSupplier(ctx context.Context, p domain.SupplierProfile) error
	RemoveSupplier(ctx context.Context, code string) (bool, error)
	// GetSupplier returns nil when the code is not configured.
	GetSupplier(ctx context.Context, code string) (*domain.SupplierProfile, error)
	// ListSuppliers returns profiles sorted by code.
	ListSuppliers(ctx context.Context) ([]domain.SupplierProfile, error)

	DispatchLag(ctx context.Context) int
	SetDispatchLag(ctx context.Context, days int) error
	// SetOverride validates the dd-mm-yyyy date before storing it.
	SetOverride(ctx context.Context, code, date string) error
	ClearOverride(ctx context.Context, code string) error

	DispatchDate(ctx context.Context, orderDate time.Time) time.Time
	DeliveryDate(ctx context.Context, code string, dispatch time.Time) (*time.Time, error)

	// ImportMatrix loads supplier profiles from a legacy schedule workbook,
	// returning how many were imported.
	ImportMatrix(ctx context.Context, path string) (int, error)
	Reload(ctx context.Context) error
}

type ProductService interface {
	Upsert(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, query string) ([]*domain.Product, error)
	Remove(ctx context.Context, sku string) (bool, error)
	Count(ctx context.Context) (int, error)
	ImportExcel(ctx context.Context, path string) (int, error)
	ExportExcel(ctx context.Context, path string) error
}

type RuleService interface {
	UpsertLocalRule(ctx context.Context, r *domain.LocalRule) error
	RemoveLocalRule(ctx context.Context, local, sku string) (bool, error)
	ListLocalRules(ctx context.Context) ([]*domain.LocalRule, error)

	UpsertStockBlock(ctx context.Context, b *domain.StockBlock) error
	RemoveStockBlock(ctx context.Context, sku, supplier string) (bool, error)
	ListStockBlocks(ctx context.Context) ([]*domain.StockBlock, error)

	Stats(ctx context.Context) (repository.RuleStats, error)
	// ImportExcel returns how many local rules and stock blocks were
	// imported, plus any per-sheet warnings.
	ImportExcel(ctx context.Context, path string) (int, int, []string, error)
	ExportExcel(ctx context.Context, path string) error
}

// ProcessRequest is a pipeline run plus where to put the report.
type ProcessRequest struct {
	pipeline.RunRequest
	OutputDir string
}

// ProcessResult is the pipeline outcome plus the written report location.
type ProcessResult struct {
	*pipeline.RunResult
	ReportPath string
}

type ProcessService interface {
	Run(ctx context.Context, req ProcessRequest) (*ProcessResult, error)
}
