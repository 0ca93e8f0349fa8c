package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/importer"
	"github.com/lucasgnemmi/orderflow/internal/report"
	"github.com/lucasgnemmi/orderflow/internal/repository"
)

type ruleService struct {
	rules repository.RuleRepo
	obs   UseCaseObserver
}

func NewRuleService(rules repository.RuleRepo, observers ...UseCaseObserver) RuleService {
	return &ruleService{rules: rules, obs: useCaseObserverOrNoop(observers)}
}

func (s *ruleService) UpsertLocalRule(ctx context.Context, r *domain.LocalRule) error {
	return s.rules.UpsertLocalRule(ctx, r)
}

func (s *ruleService) RemoveLocalRule(ctx context.Context, local, sku string) (bool, error) {
	return s.rules.DeleteLocalRule(ctx, local, sku)
}

func (s *ruleService) ListLocalRules(ctx context.Context) ([]*domain.LocalRule, error) {
	return s.rules.ListLocalRules(ctx)
}

func (s *ruleService) UpsertStockBlock(ctx context.Context, b *domain.StockBlock) error {
	return s.rules.UpsertStockBlock(ctx, b)
}

func (s *ruleService) RemoveStockBlock(ctx context.Context, sku, supplier string) (bool, error) {
	return s.rules.DeleteStockBlock(ctx, sku, supplier)
}

func (s *ruleService) ListStockBlocks(ctx context.Context) ([]*domain.StockBlock, error) {
	return s.rules.ListStockBlocks(ctx)
}

func (s *ruleService) Stats(ctx context.Context) (repository.RuleStats, error) {
	return s.rules.Stats(ctx)
}

func (s *ruleService) ImportExcel(ctx context.Context, path string) (int, int, []string, error) {
	start := time.Now()
	rows, err := importer.ReadRuleRows(path)
	if err != nil {
		observe(ctx, s.obs, "rule.import_excel", start, err, nil)
		return 0, 0, nil, err
	}

	localRules := 0
	for _, r := range rows.LocalRules {
		if err := s.rules.UpsertLocalRule(ctx, r); err != nil {
			observe(ctx, s.obs, "rule.import_excel", start, err, nil)
			return localRules, 0, rows.Warnings, fmt.Errorf("importing local rule %s/%s: %w", r.Local, r.SKU, err)
		}
		localRules++
	}
	stockBlocks := 0
	for _, b := range rows.StockBlocks {
		if err := s.rules.UpsertStockBlock(ctx, b); err != nil {
			observe(ctx, s.obs, "rule.import_excel", start, err, nil)
			return localRules, stockBlocks, rows.Warnings, fmt.Errorf("importing stock block %s/%s: %w", b.SKU, b.Supplier, err)
		}
		stockBlocks++
	}

	observe(ctx, s.obs, "rule.import_excel", start, nil, map[string]any{
		"local_rules": localRules, "stock_blocks": stockBlocks,
	})
	return localRules, stockBlocks, rows.Warnings, nil
}

func (s *ruleService) ExportExcel(ctx context.Context, path string) error {
	start := time.Now()
	rules, err := s.rules.ListLocalRules(ctx)
	if err != nil {
		observe(ctx, s.obs, "rule.export_excel", start, err, nil)
		return err
	}
	blocks, err := s.rules.ListStockBlocks(ctx)
	if err != nil {
		observe(ctx, s.obs, "rule.export_excel", start, err, nil)
		return err
	}
	err = report.WriteRules(path, rules, blocks)
	observe(ctx, s.obs, "rule.export_excel", start, err, map[string]any{
		"local_rules": len(rules), "stock_blocks": len(blocks),
	})
	return err
}
