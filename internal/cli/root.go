// Package cli wires the engine into a cobra command tree.
package cli

import (
	"github.com/alexanderramin/dosetrack/internal/engine"
	"github.com/spf13/cobra"
)

// App holds everything CLI commands need. Interactive controls whether
// commands may fall back to huh forms when flags or args are missing.
type App struct {
	Engine      *engine.Engine
	Interactive bool
}

// NewRootCmd creates the top-level "dosetrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dosetrack",
		Short:         "Medication tracker with schedules, history and stock",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newRemoveCmd(app),
		newTodayCmd(app),
		newTakeCmd(app),
		newSkipCmd(app),
		newLogCmd(app),
		newUndoCmd(app),
		newHistoryCmd(app),
		newInventoryCmd(app),
		newWatchCmd(app),
	)

	return root
}
