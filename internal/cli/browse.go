package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasgnemmi/orderflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse suppliers, products, and rules in a scrollable view",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("browse requires an interactive terminal")
			}
			model, err := newBrowseModel(app)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// browseTab indexes the read-only tables the browse view cycles through.
type browseTab int

const (
	tabSuppliers browseTab = iota
	tabProducts
	tabRules
	tabBlocks
	tabCount
)

var tabTitles = [tabCount]string{"Suppliers", "Products", "Rules", "Blocks"}

type browseModel struct {
	tab    browseTab
	tables [tabCount]table.Model
	width  int
}

var (
	browseTabActive = lipgloss.NewStyle().
			Foreground(formatter.ColorHeader).
			Bold(true).
			Padding(0, 2)
	browseTabInactive = lipgloss.NewStyle().
				Foreground(formatter.ColorDim).
				Padding(0, 2)
	browseHelp = lipgloss.NewStyle().
			Foreground(formatter.ColorDim).
			MarginTop(1)
)

func newBrowseTable(cols []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(18),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(formatter.ColorHeader).
		Bold(true).
		BorderForeground(formatter.ColorDim)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1d2021")).
		Background(formatter.ColorGreen).
		Bold(false)
	t.SetStyles(styles)
	return t
}

// newBrowseModel loads all four data sets up front; the view is a read-only
// snapshot, not a live query surface.
func newBrowseModel(app *App) (*browseModel, error) {
	ctx := context.Background()
	m := &browseModel{}

	profiles, err := app.Schedule.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	supplierRows := make([]table.Row, 0, len(profiles))
	for _, p := range profiles {
		row := table.Row{p.Code, p.Name}
		for _, d := range p.Days {
			row = append(row, d.String())
		}
		row = append(row, p.DMinus2.String(), p.ManualOverride)
		supplierRows = append(supplierRows, row)
	}
	m.tables[tabSuppliers] = newBrowseTable([]table.Column{
		{Title: "Code", Width: 10},
		{Title: "Name", Width: 28},
		{Title: "Mon", Width: 4},
		{Title: "Tue", Width: 4},
		{Title: "Wed", Width: 4},
		{Title: "Thu", Width: 4},
		{Title: "Fri", Width: 4},
		{Title: "Sat", Width: 4},
		{Title: "D-2", Width: 4},
		{Title: "Override", Width: 12},
	}, supplierRows)

	products, err := app.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	productRows := make([]table.Row, 0, len(products))
	for _, p := range products {
		productRows = append(productRows, table.Row{p.SKU, p.Description})
	}
	m.tables[tabProducts] = newBrowseTable([]table.Column{
		{Title: "SKU", Width: 16},
		{Title: "Description", Width: 60},
	}, productRows)

	rules, err := app.Rules.ListLocalRules(ctx)
	if err != nil {
		return nil, err
	}
	ruleRows := make([]table.Row, 0, len(rules))
	for _, r := range rules {
		ruleRows = append(ruleRows, table.Row{r.Local, r.SKU, r.Supplier, activeLabel(r.Active), r.Description})
	}
	m.tables[tabRules] = newBrowseTable([]table.Column{
		{Title: "Local", Width: 8},
		{Title: "SKU", Width: 16},
		{Title: "Supplier", Width: 10},
		{Title: "Status", Width: 9},
		{Title: "Description", Width: 34},
	}, ruleRows)

	blocks, err := app.Rules.ListStockBlocks(ctx)
	if err != nil {
		return nil, err
	}
	blockRows := make([]table.Row, 0, len(blocks))
	for _, b := range blocks {
		blockRows = append(blockRows, table.Row{b.SKU, b.Supplier, activeLabel(b.Active), b.Reason})
	}
	m.tables[tabBlocks] = newBrowseTable([]table.Column{
		{Title: "SKU", Width: 16},
		{Title: "Supplier", Width: 10},
		{Title: "Status", Width: 9},
		{Title: "Reason", Width: 40},
	}, blockRows)

	return m, nil
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.tables {
			m.tables[i].SetHeight(msg.Height - 6)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tables[m.tab], cmd = m.tables[m.tab].Update(msg)
	return m, cmd
}

func (m *browseModel) View() string {
	var tabs string
	for i, title := range tabTitles {
		style := browseTabInactive
		if browseTab(i) == m.tab {
			style = browseTabActive
		}
		tabs = lipgloss.JoinHorizontal(lipgloss.Top, tabs, style.Render(title))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		m.tables[m.tab].View(),
		browseHelp.Render("tab/←→ switch  ↑↓ scroll  q quit"),
	)
}
