package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/agenda"
	"github.com/lucasgnemmi/orderflow/internal/pipeline"
	"github.com/lucasgnemmi/orderflow/internal/report"
	"github.com/lucasgnemmi/orderflow/internal/repository"
)

type processService struct {
	runner *pipeline.Runner
	obs    UseCaseObserver
}

func NewProcessService(products repository.ProductRepo, rules repository.RuleRepo, resolver *agenda.Resolver, observers ...UseCaseObserver) ProcessService {
	return &processService{
		runner: &pipeline.Runner{Products: products, Rules: rules, Resolver: resolver},
		obs:    useCaseObserverOrNoop(observers),
	}
}

// Run executes the pipeline and writes the report. The report is written
// even when every line failed, so the error sheet always reaches the user.
func (s *processService) Run(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	start := time.Now()

	result, err := s.runner.Run(ctx, req.RunRequest)
	if err != nil {
		observe(ctx, s.obs, "process.run", start, err, nil)
		return nil, err
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		observe(ctx, s.obs, "process.run", start, err, nil)
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	path := report.DefaultOutputPath(outDir, result.DispatchDate)
	if err := report.WriteOrders(path, result.Valid, result.Errors); err != nil {
		observe(ctx, s.obs, "process.run", start, err, nil)
		return nil, err
	}

	observe(ctx, s.obs, "process.run", start, nil, map[string]any{
		"raw_lines":   result.RawCount,
		"valid_lines": len(result.Valid),
		"error_lines": len(result.Errors),
		"orders":      result.OrderCount,
		"report":      path,
	})
	return &ProcessResult{RunResult: result, ReportPath: path}, nil
}
