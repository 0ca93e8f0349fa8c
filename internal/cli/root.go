package cli

import (
	"github.com/lucasgnemmi/orderflow/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Schedule service.ScheduleService
	Products service.ProductService
	Rules    service.RuleService
	Process  service.ProcessService

	// IsInteractive reports whether stdin is a terminal; interactive-only
	// surfaces (forms, the browse view) refuse to start without it.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "orderflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "orderflow",
		Short: "Order intake, supplier assignment, and delivery scheduling",
	}

	root.AddCommand(
		newRunCmd(app),
		newScheduleCmd(app),
		newProductCmd(app),
		newRuleCmd(app),
		newBrowseCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
