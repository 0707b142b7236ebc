package cli

import (
	"fmt"

	"github.com/alexanderramin/dosetrack/internal/cli/formatter"
	"github.com/alexanderramin/dosetrack/internal/store"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var ids bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded outcomes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Engine.Reconcile(cmd.Context())
			sections := app.Engine.History()
			if limit > 0 && len(sections) > limit {
				sections = sections[:limit]
			}
			if ids {
				printEntryIDs(cmd, sections)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(sections, app.Engine.Now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "days", 7, "Number of days to show (0 for all)")
	cmd.Flags().BoolVar(&ids, "ids", false, "Show entry IDs, for use with undo")
	return cmd
}

func printEntryIDs(cmd *cobra.Command, sections []store.DaySection) {
	for _, sec := range sections {
		for _, e := range sec.Entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %s %s %s\n",
				e.ID, sec.Day, e.Dose.Time, e.Name, e.Outcome)
		}
	}
}
