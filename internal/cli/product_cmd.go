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

func newProductCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product master",
	}

	cmd.AddCommand(
		newProductAddCmd(app),
		newProductListCmd(app),
		newProductSearchCmd(app),
		newProductRemoveCmd(app),
		newProductImportCmd(app),
		newProductExportCmd(app),
	)

	return cmd
}

func newProductAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add SKU",
		Short: "Add or update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			p := &domain.Product{
				ID:          uuid.New().String(),
				SKU:         domain.NormalizeSKU(args[0]),
				Description: description,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := app.Products.Upsert(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Saved product %s\n", p.SKU)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Product description")

	return cmd
}

func productTable(products []*domain.Product) string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{p.SKU, p.Description})
	}
	return formatter.RenderTable([]string{"SKU", "DESCRIPTION"}, rows)
}

func newProductListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Products.List(context.Background())
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Println("Product master is empty.")
				return nil
			}
			fmt.Print(productTable(products))
			fmt.Printf("\n%s\n", formatter.Dim(fmt.Sprintf("%d products", len(products))))
			return nil
		},
	}
}

func newProductSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search products by SKU or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Products.Search(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Printf("No products match %q.\n", args[0])
				return nil
			}
			fmt.Print(productTable(products))
			return nil
		},
	}
}

func newProductRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SKU",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Products.Remove(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("product not found: %q", args[0])
			}
			fmt.Printf("Removed product %s\n", domain.NormalizeSKU(args[0]))
			return nil
		},
	}
}

func newProductImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import products from a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Products.ImportExcel(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d products from %s\n", n, args[0])
			return nil
		},
	}
}

func newProductExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the product master to a workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Products.ExportExcel(context.Background(), out); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "products.xlsx", "Output workbook path")

	return cmd
}
