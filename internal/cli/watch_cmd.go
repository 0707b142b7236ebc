package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/dosetrack/internal/schedule"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run in the foreground, sending dose and refill notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sched := schedule.NewScheduler(schedule.BeeepSink{}, app.Engine.Now)

			rearm := func() {
				app.Engine.Reconcile(ctx)
				sched.PruneDelivered()
				for _, inst := range app.Engine.Today() {
					sched.ScheduleDose(inst)
				}
				for _, t := range app.Engine.LowInventory() {
					sched.NotifyLowInventory(t)
				}
			}
			rearm()

			midnight := schedule.NewMidnightTimer(rearm, app.Engine.Now)
			midnight.Start()
			defer midnight.Stop()
			defer sched.CancelPending()

			fmt.Fprintln(cmd.OutOrStdout(), "Watching. Press Ctrl-C to stop.")
			<-ctx.Done()
			fmt.Fprintln(cmd.OutOrStdout(), "Stopped.")
			return nil
		},
	}
}
