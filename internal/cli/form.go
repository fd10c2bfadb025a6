package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/jardin/internal/cli/formatter"
	"github.com/alexanderramin/jardin/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// jardinHuhTheme returns a huh theme using the formatter palette.
func jardinHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(jardinHuhTheme()).WithShowHelp(false)
}

// quoteDraft is what the interactive composer collects.
type quoteDraft struct {
	client         string
	considerations string
	proposal       string
	flags          composeFlags
}

// runQuoteForm walks the operator through client, plans, per-plan task
// choices and free text. Results are written into d as ids so the same
// composeFlags path builds the quote.
func runQuoteForm(ctx context.Context, app *App, d *quoteDraft) error {
	ref, err := app.Catalog.LoadReferenceData(ctx)
	if err != nil {
		return err
	}
	if len(ref.Catalog) == 0 {
		return fmt.Errorf("%w: the catalog has no plans", domain.ErrValidation)
	}

	if d.client == "" {
		if len(ref.Clients) == 0 {
			return fmt.Errorf("%w: no clients registered", domain.ErrValidation)
		}
		opts := make([]huh.Option[string], 0, len(ref.Clients))
		for _, c := range ref.Clients {
			opts = append(opts, huh.NewOption(c.Name, c.ID))
		}
		if err := newForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Client").Options(opts...).Value(&d.client),
		)).RunWithContext(ctx); err != nil {
			return err
		}
	}

	planOpts := make([]huh.Option[string], 0, len(ref.Catalog))
	for _, p := range ref.Catalog {
		if len(p.Tasks) == 0 {
			continue
		}
		planOpts = append(planOpts, huh.NewOption(fmt.Sprintf("%s (%d tasks)", p.Plan.Name, len(p.Tasks)), p.Plan.ID))
	}
	var planIDs []string
	if err := newForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Plans").
			Description("Space to toggle, enter to continue").
			Options(planOpts...).
			Value(&planIDs).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return fmt.Errorf("pick at least one plan")
				}
				return nil
			}),
	)).RunWithContext(ctx); err != nil {
		return err
	}

	for _, id := range planIDs {
		for _, p := range ref.Catalog {
			if p.Plan.ID == id {
				if err := runPlanForm(ctx, p, &d.flags); err != nil {
					return err
				}
			}
		}
	}

	return newForm(huh.NewGroup(
		huh.NewText().Title("Considerations").Value(&d.considerations),
		huh.NewText().Title("Economic proposal").Value(&d.proposal),
	)).RunWithContext(ctx)
}

func runPlanForm(ctx context.Context, p domain.PlanWithTasks, f *composeFlags) error {
	all := make([]string, len(p.Tasks))
	opts := make([]huh.Option[string], len(p.Tasks))
	for i, t := range p.Tasks {
		all[i] = t.ID
		opts[i] = huh.NewOption(t.Name, t.ID)
	}
	included := append([]string(nil), all...)
	visible := append([]string(nil), all...)
	var customName, price string

	err := newForm(huh.NewGroup(
		huh.NewMultiSelect[string]().Title(p.Plan.Name+": included tasks").Options(opts...).Value(&included),
		huh.NewMultiSelect[string]().Title(p.Plan.Name+": visible to crews").Options(opts...).Value(&visible),
		huh.NewInput().Title("Custom name").Placeholder(p.Plan.Name).Value(&customName),
		huh.NewInput().Title("Reference price").Placeholder("0").Value(&price).Validate(validatePrice),
	)).RunWithContext(ctx)
	if err != nil {
		return err
	}

	f.plans = append(f.plans, p.Plan.ID)
	for _, id := range all {
		qualified := p.Plan.ID + "/" + id
		if !slices.Contains(included, id) {
			f.exclude = append(f.exclude, qualified)
		}
		if !slices.Contains(visible, id) {
			f.hide = append(f.hide, qualified)
		}
	}
	if s := strings.TrimSpace(customName); s != "" {
		f.names = append(f.names, p.Plan.ID+"="+s)
	}
	if s := strings.TrimSpace(price); s != "" {
		f.prices = append(f.prices, p.Plan.ID+"="+s)
	}
	return nil
}

func validatePrice(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if d.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}
