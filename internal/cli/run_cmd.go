package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/cli/formatter"
	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/lucasgnemmi/orderflow/internal/pipeline"
	"github.com/lucasgnemmi/orderflow/internal/service"
	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		ordersDir string
		priceList string
		region    string
		local     string
		orderDate string
		outDir    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process order files into a consolidated order workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.ProcessRequest{
				RunRequest: pipeline.RunRequest{
					OrdersDir: ordersDir,
					PriceList: priceList,
					Region:    region,
					Local:     local,
				},
				OutputDir: outDir,
			}
			if orderDate != "" {
				parsed, err := time.Parse("2006-01-02", orderDate)
				if err != nil {
					return fmt.Errorf("invalid order date %q: %w", orderDate, err)
				}
				req.OrderDate = parsed
			}

			var stop func()
			if app.interactive() {
				stop = formatter.StartSpinner("processing order files...")
			}
			result, err := app.Process.Run(context.Background(), req)
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			printRunSummary(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&ordersDir, "orders-dir", "", "Folder containing order workbooks")
	cmd.Flags().StringVar(&priceList, "price-list", "", "Price list workbook")
	cmd.Flags().StringVar(&region, "region", "", "Price list region filter (default 099)")
	cmd.Flags().StringVar(&local, "local", "", "Default store code for lines missing one")
	cmd.Flags().StringVar(&orderDate, "order-date", "", "Order date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output folder for the report (default current directory)")
	_ = cmd.MarkFlagRequired("orders-dir")
	_ = cmd.MarkFlagRequired("price-list")

	return cmd
}

func printRunSummary(result *service.ProcessResult) {
	fmt.Println(formatter.Header("Processing summary"))
	fmt.Printf("  Order date:    %s\n", result.OrderDate.Format("2006-01-02"))
	fmt.Printf("  Dispatch date: %s (%s)\n",
		result.DispatchDate.Format("2006-01-02"), domain.WeekdayOf(result.DispatchDate))
	fmt.Println()

	if len(result.FileStats) > 0 {
		rows := make([][]string, 0, len(result.FileStats))
		for _, st := range result.FileStats {
			status := fmt.Sprintf("%d rows, %d accepted, %d rejected", st.Rows, st.Accepted, st.Rejected)
			if st.Skipped != "" {
				status = formatter.StyleYellow.Render("skipped: " + st.Skipped)
			}
			rows = append(rows, []string{st.File, status})
		}
		fmt.Print(formatter.RenderTable([]string{"FILE", "RESULT"}, rows))
		fmt.Println()
	}

	fmt.Printf("  Intake lines:   %d\n", result.RawCount)
	fmt.Printf("  Valid lines:    %s\n", formatter.StyleGreen.Render(fmt.Sprintf("%d", len(result.Valid))))
	fmt.Printf("  Error lines:    %s\n", errorCount(len(result.Errors)))
	fmt.Printf("  Orders issued:  %d\n", result.OrderCount)
	if result.AssignStats.ForcedRules > 0 || result.AssignStats.StockBlocks > 0 {
		fmt.Printf("  Rules applied:  %d forced, %d blocks\n",
			result.AssignStats.ForcedRules, result.AssignStats.StockBlocks)
	}

	if len(result.MissingSuppliers) > 0 {
		fmt.Printf("\n%s\n", formatter.StyleYellow.Render("Suppliers missing from the schedule:"))
		for _, s := range result.MissingSuppliers {
			fmt.Printf("  - %s\n", s)
		}
	}
	for _, w := range result.Warnings {
		fmt.Printf("%s %s\n", formatter.StyleYellow.Render("warning:"), w)
	}

	fmt.Printf("\nReport written to %s\n", formatter.Bold(result.ReportPath))
}

func errorCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if n > 0 {
		return formatter.StyleRed.Render(s)
	}
	return formatter.StyleGreen.Render(s)
}
