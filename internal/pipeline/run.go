package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/agenda"
	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/importer"
	"github.com/lucasgnemmi/orderflow/internal/repository"
)

// Runner wires the collaborators of one processing run.
type Runner struct {
	Products repository.ProductRepo
	Rules    repository.RuleRepo
	Resolver *agenda.Resolver
}

// RunRequest describes one end-to-end processing run.
type RunRequest struct {
	OrdersDir string
	PriceList string
	Region    string
	Local     string
	// OrderDate defaults to today.
	OrderDate time.Time
}

// RunResult is the outcome of a run: the finalized valid lines, the routed
// error lines, and everything worth reporting about how the run went.
type RunResult struct {
	Valid  []domain.OrderLine
	Errors []domain.OrderLine

	OrderDate    time.Time
	DispatchDate time.Time

	FileStats        []importer.FileStat
	Warnings         []string
	MissingSuppliers []string
	AssignStats      AssignStats

	// RawCount is the number of intake lines before any stage ran;
	// OrderCount is the number of distinct order identifiers issued.
	RawCount   int
	OrderCount int
}

// Run executes the whole pipeline synchronously. Only I/O failures (orders
// folder, price list) abort the run; business failures route lines to the
// error set and the run completes.
func (r *Runner) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	res := &RunResult{
		OrderDate:    orderDate,
		DispatchDate: r.Resolver.DispatchDate(orderDate),
	}

	lines, stats, err := importer.ReadOrders(req.OrdersDir, req.Local)
	if err != nil {
		return nil, err
	}
	res.FileStats = stats
	res.RawCount = len(lines)
	for _, st := range stats {
		if st.Skipped != "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s", st.File, st.Skipped))
		}
	}
	if len(lines) == 0 {
		res.Warnings = append(res.Warnings, "no order lines found")
		return res, nil
	}

	master, err := r.Products.SKUSet(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading product master: %w", err)
	}
	if len(master) == 0 {
		res.Warnings = append(res.Warnings, "product master is empty, SKU validation skipped")
	}
	valid, stageErrs := ValidateSKUs(lines, master)
	res.Errors = append(res.Errors, stageErrs...)

	prices, plWarnings, err := importer.ReadPriceList(req.PriceList, req.Region)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(res.Warnings, plWarnings...)

	valid, stageErrs, assignStats, assignWarnings, err := AssignSuppliers(ctx, valid, prices, r.Rules)
	if err != nil {
		return nil, err
	}
	res.Errors = append(res.Errors, stageErrs...)
	res.Warnings = append(res.Warnings, assignWarnings...)
	res.AssignStats = assignStats

	valid, stageErrs, missing, err := FillDeliveryDates(valid, r.Resolver, res.DispatchDate)
	if err != nil {
		return nil, err
	}
	res.Errors = append(res.Errors, stageErrs...)
	res.MissingSuppliers = missing

	res.Valid = AssignOrderIDs(Consolidate(valid))
	for _, line := range res.Valid {
		if line.OrderID > res.OrderCount {
			res.OrderCount = line.OrderID
		}
	}
	return res, nil
}
