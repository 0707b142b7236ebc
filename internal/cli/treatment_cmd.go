package cli

import (
	"fmt"

	"github.com/alexanderramin/dosetrack/internal/cli/formatter"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		unit      string
		freq      string
		days      string
		cycle     string
		times     []string
		color     string
		stock     float64
		threshold float64
		start     string
		end       string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a treatment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// With no name given and a terminal attached, run the wizard.
			if len(args) == 0 {
				if app.Interactive {
					return runAddWizard(cmd.Context(), app)
				}
				return fmt.Errorf("treatment name is required")
			}

			t := &domain.Treatment{
				Name:      args[0],
				Unit:      unit,
				Color:     color,
				Frequency: domain.Frequency(freq),
			}

			if days != "" {
				parsed, err := parseWeekdays(days)
				if err != nil {
					return err
				}
				t.Days = parsed
				if !cmd.Flags().Changed("freq") {
					t.Frequency = domain.FreqSpecificDays
				}
			}

			if cycle != "" {
				active, inactive, err := parseCycle(cycle)
				if err != nil {
					return err
				}
				t.Cycle = domain.CyclePlan{ActiveDays: active, InactiveDays: inactive}
				if !cmd.Flags().Changed("freq") {
					t.Frequency = domain.FreqCycle
				}
			}

			for _, ts := range times {
				slot, err := parseSlot(ts)
				if err != nil {
					return err
				}
				t.Slots = append(t.Slots, slot)
			}

			if cmd.Flags().Changed("stock") {
				t.Inventory = domain.InventoryState{Enabled: true, Current: stock, Threshold: threshold}
			}

			if start != "" || end != "" {
				if start == "" || end == "" {
					return fmt.Errorf("--start and --end must be given together")
				}
				s, err := parseDate(start)
				if err != nil {
					return err
				}
				e, err := parseDate(end)
				if err != nil {
					return err
				}
				if e.Before(s) {
					return fmt.Errorf("end date %s is before start date %s", end, start)
				}
				t.Duration = domain.DurationWindow{Enabled: true, Start: s, End: e}
			}

			if err := app.Engine.AddTreatment(cmd.Context(), t); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", t.Name, formatter.ScheduleLabel(t))
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "pill", "Dose unit (pill, ml, mg, ...)")
	cmd.Flags().StringVar(&freq, "freq", string(domain.FreqDaily), "Frequency: daily, specific-days, cycle, when-needed")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays for specific-days, e.g. mon,wed,fri")
	cmd.Flags().StringVar(&cycle, "cycle", "", "Cycle as ON/OFF day counts, e.g. 21/7")
	cmd.Flags().StringArrayVar(&times, "time", nil, "Dose time, optionally with amount: 08:00 or 08:00=0.5 (repeatable)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex, e.g. #8ec07c)")
	cmd.Flags().Float64Var(&stock, "stock", 0, "Current stock; enables inventory tracking")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Stock level that triggers a refill reminder")
	cmd.Flags().StringVar(&start, "start", "", "First day of a bounded course (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day of a bounded course (YYYY-MM-DD)")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List treatments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTreatments(app.Engine.Treatments()))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a treatment (history is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !yes && app.Interactive {
				ok, err := confirmRemoval(name)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			if err := app.Engine.RemoveTreatment(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
