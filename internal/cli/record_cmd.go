package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dosetrack/internal/cli/formatter"
	"github.com/alexanderramin/dosetrack/internal/domain"
	"github.com/spf13/cobra"
)

func newTakeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "take [name...]",
		Short: "Record due doses as taken",
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordOutcome(cmd, app, args, domain.OutcomeTaken)
		},
	}
}

func newSkipCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "skip [name...]",
		Short: "Record due doses as skipped",
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordOutcome(cmd, app, args, domain.OutcomeSkipped)
		},
	}
}

// recordOutcome resolves which due instances the user means. With no args
// and a terminal, a multi-select over the due set is shown; with names,
// every due instance of each named treatment is recorded.
func recordOutcome(cmd *cobra.Command, app *App, args []string, outcome domain.Outcome) error {
	app.Engine.Reconcile(cmd.Context())
	due := app.Engine.Today()
	if len(due) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing due today.")
		return nil
	}

	var picked []domain.DoseInstance
	if len(args) == 0 {
		if !app.Interactive {
			return fmt.Errorf("treatment name is required")
		}
		var err error
		picked, err = pickDueInstances(due, outcome)
		if err != nil {
			return err
		}
	} else {
		for _, name := range args {
			matched := false
			for _, inst := range due {
				if strings.EqualFold(inst.Name, name) {
					picked = append(picked, inst)
					matched = true
				}
			}
			if !matched {
				return fmt.Errorf("no due dose for %q today", name)
			}
		}
	}

	if len(picked) == 0 {
		return nil
	}
	if err := app.Engine.Record(cmd.Context(), picked, outcome); err != nil {
		return err
	}

	for _, inst := range picked {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s\n",
			formatter.OutcomeBadge(outcome), inst.Name, inst.Dose.Time)
	}
	return nil
}

func newLogCmd(app *App) *cobra.Command {
	var (
		amount float64
		at     string
	)

	cmd := &cobra.Command{
		Use:   "log <name> [amount]",
		Short: "Log an unscheduled dose (when-needed or extra)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if len(args) == 2 {
				parsed, err := strconv.ParseFloat(args[1], 64)
				if err != nil || parsed <= 0 {
					return fmt.Errorf("invalid amount %q", args[1])
				}
				amount = parsed
			}

			when := domain.DayTimeOf(app.Engine.Now())
			if at != "" {
				parsed, err := domain.ParseDayTime(at)
				if err != nil {
					return err
				}
				when = parsed
			}

			if err := app.Engine.RecordAdHoc(cmd.Context(), name, amount, when); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s of %s at %s\n",
				formatter.Amount(amount), name, when)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 1, "Dose amount")
	cmd.Flags().StringVar(&at, "at", "", "Time taken (HH:MM, default now)")
	return cmd
}

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo [entry-id]",
		Short: "Remove a recorded outcome; the dose becomes due again",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			} else {
				// Default to the newest entry recorded today.
				today := app.Engine.History()
				if len(today) == 0 {
					return fmt.Errorf("nothing to undo")
				}
				id = today[0].Entries[0].ID
			}
			if err := app.Engine.Unrecord(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Undone.")
			return nil
		},
	}
}
