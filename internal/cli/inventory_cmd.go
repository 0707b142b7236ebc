package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/dosetrack/internal/cli/formatter"
	"github.com/alexanderramin/dosetrack/internal/store"
	"github.com/spf13/cobra"
)

func newInventoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show remaining stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInventory(app.Engine.Treatments()))
			return nil
		},
	}

	cmd.AddCommand(newInventoryRefillCmd(app))
	return cmd
}

func newInventoryRefillCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refill <name> <amount>",
		Short: "Add stock after a refill",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			t := app.Engine.Treatment(args[0])
			if t == nil {
				return store.ErrTreatmentNotFound
			}
			if !t.Inventory.Enabled {
				return fmt.Errorf("%s does not track inventory", t.Name)
			}

			t.Inventory.Current += amount
			if err := app.Engine.UpdateTreatment(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now has %s\n",
				t.Name, formatter.Dose(t.Inventory.Current, t.Unit))
			return nil
		},
	}
}
