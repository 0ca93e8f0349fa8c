package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasgnemmi/orderflow/internal/agenda"
	"github.com/lucasgnemmi/orderflow/internal/cli"
	"github.com/lucasgnemmi/orderflow/internal/db"
	"github.com/lucasgnemmi/orderflow/internal/repository"
	"github.com/lucasgnemmi/orderflow/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine the data directory: env var or default ~/.orderflow
	home := os.Getenv("ORDERFLOW_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		home = filepath.Join(userHome, ".orderflow")
	}

	dbPath := os.Getenv("ORDERFLOW_DB")
	if dbPath == "" {
		dbPath = filepath.Join(home, "orderflow.db")
	}
	schedulePath := os.Getenv("ORDERFLOW_SCHEDULE")
	if schedulePath == "" {
		schedulePath = filepath.Join(home, "schedule.json")
	}

	// Open database
	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Open the schedule store (self-heals to defaults on a missing or
	// corrupt file)
	store, err := agenda.Open(schedulePath)
	if err != nil {
		return fmt.Errorf("opening schedule store: %w", err)
	}
	resolver := agenda.NewResolver(store)

	// Wire repositories
	productRepo := repository.NewSQLiteProductRepo(database)
	ruleRepo := repository.NewSQLiteRuleRepo(database)

	// Wire services; ORDERFLOW_VERBOSE turns on use-case logging to stderr.
	var observers []service.UseCaseObserver
	if os.Getenv("ORDERFLOW_VERBOSE") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Schedule: service.NewScheduleService(store, observers...),
		Products: service.NewProductService(productRepo, observers...),
		Rules:    service.NewRuleService(ruleRepo, observers...),
		Process:  service.NewProcessService(productRepo, ruleRepo, resolver, observers...),
	}

	// Detect interactive terminal for forms, spinners, and the browse view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
