package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dosetrack/internal/cli/formatter"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func dosetrackHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
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

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateTimes(s string) error {
	for _, part := range strings.Split(s, ",") {
		if _, err := parseSlot(strings.TrimSpace(part)); err != nil {
			return err
		}
	}
	return nil
}

func validateOptionalFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative number")
	}
	return nil
}

// runAddWizard collects a full treatment definition interactively.
func runAddWizard(ctx context.Context, app *App) error {
	var (
		name      string
		unit      = "pill"
		freq      = string(domain.FreqDaily)
		days      []string
		cycleStr  string
		timesStr  = "08:00"
		stockStr  string
		threshStr string
	)

	base := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Aspirin").
				Value(&name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Unit").
				Placeholder("pill").
				Value(&unit),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Every day", string(domain.FreqDaily)),
					huh.NewOption("Specific weekdays", string(domain.FreqSpecificDays)),
					huh.NewOption("Cycle (N days on, M off)", string(domain.FreqCycle)),
					huh.NewOption("Only when needed", string(domain.FreqWhenNeeded)),
				).
				Value(&freq),
		),
	).WithTheme(dosetrackHuhTheme()).WithShowHelp(false)

	if err := base.RunWithContext(ctx); err != nil {
		return err
	}

	t := &domain.Treatment{
		Name:      strings.TrimSpace(name),
		Unit:      strings.TrimSpace(unit),
		Frequency: domain.Frequency(freq),
	}

	switch t.Frequency {
	case domain.FreqSpecificDays:
		pick := huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title("Which days?").
					Options(
						huh.NewOption("Monday", "mon"),
						huh.NewOption("Tuesday", "tue"),
						huh.NewOption("Wednesday", "wed"),
						huh.NewOption("Thursday", "thu"),
						huh.NewOption("Friday", "fri"),
						huh.NewOption("Saturday", "sat"),
						huh.NewOption("Sunday", "sun"),
					).
					Value(&days),
			),
		).WithTheme(dosetrackHuhTheme()).WithShowHelp(false)
		if err := pick.RunWithContext(ctx); err != nil {
			return err
		}
		parsed, err := parseWeekdays(strings.Join(days, ","))
		if err != nil {
			return err
		}
		t.Days = parsed

	case domain.FreqCycle:
		cycleForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cycle (days on / days off)").
					Placeholder("21/7").
					Value(&cycleStr).
					Validate(func(s string) error {
						_, _, err := parseCycle(s)
						return err
					}),
			),
		).WithTheme(dosetrackHuhTheme()).WithShowHelp(false)
		if err := cycleForm.RunWithContext(ctx); err != nil {
			return err
		}
		active, inactive, err := parseCycle(cycleStr)
		if err != nil {
			return err
		}
		t.Cycle = domain.CyclePlan{ActiveDays: active, InactiveDays: inactive}
	}

	if t.Frequency != domain.FreqWhenNeeded {
		timesForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Dose times (comma separated, amount after =)").
					Placeholder("08:00, 20:00=0.5").
					Value(&timesStr).
					Validate(validateTimes),
			),
		).WithTheme(dosetrackHuhTheme()).WithShowHelp(false)
		if err := timesForm.RunWithContext(ctx); err != nil {
			return err
		}
		for _, part := range strings.Split(timesStr, ",") {
			slot, err := parseSlot(strings.TrimSpace(part))
			if err != nil {
				return err
			}
			t.Slots = append(t.Slots, slot)
		}
	}

	stockForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current stock (blank to skip tracking)").
				Placeholder("30").
				Value(&stockStr).
				Validate(validateOptionalFloat),
			huh.NewInput().
				Title("Refill reminder at").
				Placeholder("5").
				Value(&threshStr).
				Validate(validateOptionalFloat),
		),
	).WithTheme(dosetrackHuhTheme()).WithShowHelp(false)
	if err := stockForm.RunWithContext(ctx); err != nil {
		return err
	}
	if s := strings.TrimSpace(stockStr); s != "" {
		current, _ := strconv.ParseFloat(s, 64)
		threshold := 0.0
		if th := strings.TrimSpace(threshStr); th != "" {
			threshold, _ = strconv.ParseFloat(th, 64)
		}
		t.Inventory = domain.InventoryState{Enabled: true, Current: current, Threshold: threshold}
	}

	if err := app.Engine.AddTreatment(ctx, t); err != nil {
		return err
	}
	fmt.Printf("Added %s (%s)\n", t.Name, formatter.ScheduleLabel(t))
	return nil
}

// pickDueInstances shows a multi-select over today's due set.
func pickDueInstances(due []domain.DoseInstance, outcome domain.Outcome) ([]domain.DoseInstance, error) {
	opts := make([]huh.Option[int], 0, len(due))
	for i, inst := range due {
		label := fmt.Sprintf("%s  %s (%s)", inst.Dose.Time, inst.Name,
			formatter.Dose(inst.Dose.Amount, inst.Unit))
		opts = append(opts, huh.NewOption(label, i))
	}

	var selected []int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title(fmt.Sprintf("Mark as %s", outcome)).
				Options(opts...).
				Value(&selected),
		),
	).WithTheme(dosetrackHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}

	picked := make([]domain.DoseInstance, 0, len(selected))
	for _, i := range selected {
		picked = append(picked, due[i])
	}
	return picked, nil
}

// confirmRemoval asks before dropping a treatment.
func confirmRemoval(name string) (bool, error) {
	ok := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove %s? History entries are kept.", name)).
				Value(&ok),
		),
	).WithTheme(dosetrackHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
