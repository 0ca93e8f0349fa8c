package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/lucasgnemmi/orderflow/internal/cli/formatter"
	"github.com/lucasgnemmi/orderflow/internal/domain"
)

func orderflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(formatter.ColorGreen)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(formatter.ColorGreen)
	t.Blurred.Title = t.Blurred.Title.Foreground(formatter.ColorDim)
	return t
}

func triStateSelect(title string, value *domain.TriState) *huh.Select[domain.TriState] {
	return huh.NewSelect[domain.TriState]().
		Title(title).
		Options(
			huh.NewOption("yes", domain.TriApplies),
			huh.NewOption("no", domain.TriNotApplicable),
			huh.NewOption("-", domain.TriIgnored),
		).
		Value(value)
}

func validateOptionalOverride(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.OverrideDateLayout, s); err != nil {
		return fmt.Errorf("expected dd-mm-yyyy")
	}
	return nil
}

// runProfileForm edits a supplier profile in place through an interactive
// form. The code itself is not editable; it is the lookup key.
func runProfileForm(p *domain.SupplierProfile) error {
	dayFields := make([]huh.Field, 0, len(p.Days)+1)
	for i := range p.Days {
		dayFields = append(dayFields, triStateSelect(domain.Weekday(i).String(), &p.Days[i]))
	}
	dayFields = append(dayFields, triStateSelect("D-2 rule", &p.DMinus2))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Supplier %s: name", p.Code)).
				Value(&p.Name),
			huh.NewInput().
				Title("Manual override date (dd-mm-yyyy, blank for none)").
				Placeholder("15-01-2026").
				Value(&p.ManualOverride).
				Validate(validateOptionalOverride),
		),
		huh.NewGroup(dayFields...).Title("Delivery triggers"),
	).WithTheme(orderflowHuhTheme())

	return form.Run()
}
