package service

import (
	"context"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/importer"
	"github.com/lucasgnemmi/orderflow/internal/report"
	"github.com/lucasgnemmi/orderflow/internal/repository"
)

type productService struct {
	products repository.ProductRepo
	obs      UseCaseObserver
}

func NewProductService(products repository.ProductRepo, observers ...UseCaseObserver) ProductService {
	return &productService{products: products, obs: useCaseObserverOrNoop(observers)}
}

func (s *productService) Upsert(ctx context.Context, p *domain.Product) error {
	return s.products.Upsert(ctx, p)
}

func (s *productService) Get(ctx context.Context, sku string) (*domain.Product, error) {
	return s.products.GetBySKU(ctx, sku)
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

func (s *productService) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	return s.products.Search(ctx, query)
}

func (s *productService) Remove(ctx context.Context, sku string) (bool, error) {
	return s.products.Delete(ctx, sku)
}

func (s *productService) Count(ctx context.Context) (int, error) {
	return s.products.Count(ctx)
}

func (s *productService) ImportExcel(ctx context.Context, path string) (int, error) {
	start := time.Now()
	rows, err := importer.ReadProductRows(path)
	if err != nil {
		observe(ctx, s.obs, "product.import_excel", start, err, nil)
		return 0, err
	}
	written, err := s.products.BulkUpsert(ctx, rows)
	observe(ctx, s.obs, "product.import_excel", start, err, map[string]any{"imported": written})
	return written, err
}

func (s *productService) ExportExcel(ctx context.Context, path string) error {
	start := time.Now()
	products, err := s.products.List(ctx)
	if err != nil {
		observe(ctx, s.obs, "product.export_excel", start, err, nil)
		return err
	}
	err = report.WriteProducts(path, products)
	observe(ctx, s.obs, "product.export_excel", start, err, map[string]any{"exported": len(products)})
	return err
}
