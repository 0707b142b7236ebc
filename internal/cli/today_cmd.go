package cli

import (
	"fmt"

	"github.com/alexanderramin/dosetrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show doses still due today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Engine.Reconcile(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(app.Engine.TodaySections()))
			return nil
		},
	}
}
