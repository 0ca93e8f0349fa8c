package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lucasgnemmi/orderflow/internal/cli/formatter"
	"github.com/lucasgnemmi/orderflow/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage the weekly delivery schedule",
	}

	cmd.AddCommand(
		newScheduleAddCmd(app),
		newScheduleListCmd(app),
		newScheduleShowCmd(app),
		newScheduleEditCmd(app),
		newScheduleRemoveCmd(app),
		newScheduleSetLagCmd(app),
		newScheduleSetOverrideCmd(app),
		newScheduleClearOverrideCmd(app),
		newScheduleImportCmd(app),
		newScheduleResolveCmd(app),
	)

	return cmd
}

// dayFlags registers the six weekday flags plus D-2 against a profile.
func dayFlags(cmd *cobra.Command, p *domain.SupplierProfile) {
	names := []string{"mon", "tue", "wed", "thu", "fri", "sat"}
	for i, n := range names {
		cmd.Flags().Var(newTriStateValue(&p.Days[i]), n, fmt.Sprintf("Delivery flag for %s", domain.Weekday(i)))
	}
	cmd.Flags().Var(newTriStateValue(&p.DMinus2), "d2", "Two-days-before-dispatch delivery flag")
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var p domain.SupplierProfile

	cmd := &cobra.Command{
		Use:   "add CODE",
		Short: "Add or replace a supplier profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Code = args[0]
			if err := app.Schedule.UpsertSupplier(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Saved supplier %s\n", domain.NormalizeSupplierCode(p.Code))
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "Supplier display name")
	cmd.Flags().StringVar(&p.ManualOverride, "override", "", "Manual override date (dd-mm-yyyy)")
	dayFlags(cmd, &p)

	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all supplier profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Schedule.ListSuppliers(context.Background())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Println("No suppliers configured.")
				return nil
			}

			headers := []string{"CODE", "NAME", "MON", "TUE", "WED", "THU", "FRI", "SAT", "D-2", "OVERRIDE"}
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				row := []string{p.Code, p.Name}
				for _, d := range p.Days {
					row = append(row, formatter.TriStateMark(d))
				}
				row = append(row, formatter.TriStateMark(p.DMinus2), p.ManualOverride)
				rows = append(rows, row)
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			fmt.Printf("\n%s\n", formatter.Dim(fmt.Sprintf("%d suppliers, dispatch lag %d days",
				len(profiles), app.Schedule.DispatchLag(context.Background()))))
			return nil
		},
	}
}

func newScheduleShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE",
		Short: "Show one supplier profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Schedule.GetSupplier(context.Background(), args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("supplier not found: %q", args[0])
			}

			fmt.Println(formatter.Header(fmt.Sprintf("Supplier %s", p.Code)))
			fmt.Printf("  Name:     %s\n", orDash(p.Name))
			for i, d := range p.Days {
				fmt.Printf("  %s:      %s %s\n", domain.Weekday(i), formatter.TriStateMark(d), formatter.Dim(d.String()))
			}
			fmt.Printf("  D-2:      %s %s\n", formatter.TriStateMark(p.DMinus2), formatter.Dim(p.DMinus2.String()))
			fmt.Printf("  Override: %s\n", orDash(p.ManualOverride))
			return nil
		},
	}
}

func newScheduleEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit CODE",
		Short: "Edit a supplier profile interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("edit requires an interactive terminal; use `schedule add` with flags instead")
			}
			ctx := context.Background()
			p, err := app.Schedule.GetSupplier(ctx, args[0])
			if err != nil {
				return err
			}
			if p == nil {
				p = &domain.SupplierProfile{Code: domain.NormalizeSupplierCode(args[0])}
			}

			if err := runProfileForm(p); err != nil {
				return err
			}
			if err := app.Schedule.UpsertSupplier(ctx, *p); err != nil {
				return err
			}
			fmt.Printf("Saved supplier %s\n", p.Code)
			return nil
		},
	}
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CODE",
		Short: "Remove a supplier profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Schedule.RemoveSupplier(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("supplier not found: %q", args[0])
			}
			fmt.Printf("Removed supplier %s\n", domain.NormalizeSupplierCode(args[0]))
			return nil
		},
	}
}

func newScheduleSetLagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-lag DAYS",
		Short: "Set the order-to-dispatch lag in days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid day count %q: %w", args[0], err)
			}
			if err := app.Schedule.SetDispatchLag(context.Background(), days); err != nil {
				return err
			}
			fmt.Printf("Dispatch lag set to %d days\n", days)
			return nil
		},
	}
}

func newScheduleSetOverrideCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-override CODE DATE",
		Short: "Pin a supplier to a fixed delivery date (dd-mm-yyyy)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedule.SetOverride(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Supplier %s pinned to %s\n", domain.NormalizeSupplierCode(args[0]), args[1])
			return nil
		},
	}
}

func newScheduleClearOverrideCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-override CODE",
		Short: "Remove a supplier's manual override date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedule.ClearOverride(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Override cleared for supplier %s\n", domain.NormalizeSupplierCode(args[0]))
			return nil
		},
	}
}

func newScheduleImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import supplier profiles from a schedule matrix workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Schedule.ImportMatrix(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d supplier profiles from %s\n", n, args[0])
			return nil
		},
	}
}

func newScheduleResolveCmd(app *App) *cobra.Command {
	var orderDate string

	cmd := &cobra.Command{
		Use:   "resolve CODE",
		Short: "Show the delivery date a supplier would get today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			base := time.Now()
			if orderDate != "" {
				parsed, err := time.Parse("2006-01-02", orderDate)
				if err != nil {
					return fmt.Errorf("invalid order date %q: %w", orderDate, err)
				}
				base = parsed
			}

			dispatch := app.Schedule.DispatchDate(ctx, base)
			delivery, err := app.Schedule.DeliveryDate(ctx, args[0], dispatch)
			if err != nil {
				return err
			}

			fmt.Printf("Order date:    %s (%s)\n", base.Format("2006-01-02"), domain.WeekdayOf(base))
			fmt.Printf("Dispatch date: %s (%s)\n", dispatch.Format("2006-01-02"), domain.WeekdayOf(dispatch))
			if delivery == nil {
				fmt.Printf("Delivery date: %s\n", formatter.StyleYellow.Render("unresolved (no schedule triggers)"))
				return nil
			}
			fmt.Printf("Delivery date: %s (%s)\n",
				formatter.Bold(delivery.Format(domain.OverrideDateLayout)), domain.WeekdayOf(*delivery))
			return nil
		},
	}

	cmd.Flags().StringVar(&orderDate, "order-date", "", "Order date (YYYY-MM-DD, default today)")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
