package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lucasgnemmi/orderflow/internal/cli/formatter"
	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/spf13/cobra"
)

func newRuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage forced-supplier rules and stock blocks",
	}

	cmd.AddCommand(
		newRuleLocalCmd(app),
		newRuleBlockCmd(app),
		newRuleStatsCmd(app),
		newRuleImportCmd(app),
		newRuleExportCmd(app),
	)

	return cmd
}

func newRuleLocalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Manage per-store forced-supplier rules",
	}

	cmd.AddCommand(
		newRuleLocalAddCmd(app),
		newRuleLocalListCmd(app),
		newRuleLocalRemoveCmd(app),
	)

	return cmd
}

func newRuleLocalAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add LOCAL SKU SUPPLIER",
		Short: "Force a supplier for a store+SKU pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			r := &domain.LocalRule{
				ID:          uuid.New().String(),
				Local:       args[0],
				SKU:         domain.NormalizeSKU(args[1]),
				Supplier:    domain.NormalizeSupplierCode(args[2]),
				Description: description,
				Active:      true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := app.Rules.UpsertLocalRule(context.Background(), r); err != nil {
				return err
			}
			fmt.Printf("Forced supplier %s for %s at local %s\n", r.Supplier, r.SKU, r.Local)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Why this rule exists")

	return cmd
}

func newRuleLocalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List forced-supplier rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := app.Rules.ListLocalRules(context.Background())
			if err != nil {
				return err
			}
			if len(rules) == 0 {
				fmt.Println("No forced-supplier rules.")
				return nil
			}

			rows := make([][]string, 0, len(rules))
			for _, r := range rules {
				active := formatter.StyleGreen.Render("active")
				if !r.Active {
					active = formatter.Dim("inactive")
				}
				rows = append(rows, []string{r.Local, r.SKU, r.Supplier, active, r.Description})
			}
			fmt.Print(formatter.RenderTable([]string{"LOCAL", "SKU", "SUPPLIER", "STATUS", "DESCRIPTION"}, rows))
			return nil
		},
	}
}

func newRuleLocalRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove LOCAL SKU",
		Short: "Remove a forced-supplier rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Rules.RemoveLocalRule(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no rule for local %s, SKU %s", args[0], args[1])
			}
			fmt.Printf("Removed rule for local %s, SKU %s\n", args[0], domain.NormalizeSKU(args[1]))
			return nil
		},
	}
}

func newRuleBlockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Manage supplier stock blocks",
	}

	cmd.AddCommand(
		newRuleBlockAddCmd(app),
		newRuleBlockListCmd(app),
		newRuleBlockRemoveCmd(app),
	)

	return cmd
}

func newRuleBlockAddCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "add SKU SUPPLIER",
		Short: "Block a supplier from serving a SKU",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			b := &domain.StockBlock{
				ID:        uuid.New().String(),
				SKU:       domain.NormalizeSKU(args[0]),
				Supplier:  domain.NormalizeSupplierCode(args[1]),
				Reason:    reason,
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := app.Rules.UpsertStockBlock(context.Background(), b); err != nil {
				return err
			}
			fmt.Printf("Blocked supplier %s for %s\n", b.Supplier, b.SKU)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the supplier is blocked")

	return cmd
}

func newRuleBlockListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stock blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := app.Rules.ListStockBlocks(context.Background())
			if err != nil {
				return err
			}
			if len(blocks) == 0 {
				fmt.Println("No stock blocks.")
				return nil
			}

			rows := make([][]string, 0, len(blocks))
			for _, b := range blocks {
				active := formatter.StyleRed.Render("blocked")
				if !b.Active {
					active = formatter.Dim("inactive")
				}
				rows = append(rows, []string{b.SKU, b.Supplier, active, b.Reason})
			}
			fmt.Print(formatter.RenderTable([]string{"SKU", "SUPPLIER", "STATUS", "REASON"}, rows))
			return nil
		},
	}
}

func newRuleBlockRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SKU SUPPLIER",
		Short: "Remove a stock block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Rules.RemoveStockBlock(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no block for SKU %s, supplier %s", args[0], args[1])
			}
			fmt.Printf("Unblocked supplier %s for %s\n",
				domain.NormalizeSupplierCode(args[1]), domain.NormalizeSKU(args[0]))
			return nil
		},
	}
}

func newRuleStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show rule counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Rules.Stats(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.Header("Rules"))
			fmt.Printf("  Forced-supplier rules: %d active / %d total\n", stats.ActiveLocalRules, stats.LocalRules)
			fmt.Printf("  Stock blocks:          %d active / %d total\n", stats.ActiveStockBlocks, stats.StockBlocks)
			return nil
		},
	}
}

func newRuleImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import rules from a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locals, blocks, warnings, err := app.Rules.ImportExcel(context.Background(), args[0])
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Printf("%s %s\n", formatter.StyleYellow.Render("warning:"), w)
			}
			fmt.Printf("Imported %d forced-supplier rules and %d stock blocks from %s\n", locals, blocks, args[0])
			return nil
		},
	}
}

func newRuleExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export rules to a workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Rules.ExportExcel(context.Background(), out); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "rules.xlsx", "Output workbook path")

	return cmd
}
