package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/config"
)

// Execute loads configuration, builds the command tree and runs it until
// completion or an interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(config.LoadConfig())
	defer func() { _ = app.Close() }()

	return newRootCmd(app).ExecuteContext(ctx)
}

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "geotime",
		Short: "A geofence-aware timecard tracker",
		Long: `geotime tracks work time against timecards and attaches location
events to the active one. Clock in to open a timecard, feed location
updates through track mode, and clock out to close it with a final
position fix.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return app.init(cmd) },
	}

	pf := root.PersistentFlags()
	pf.StringP("db", "d", app.cfg.DatabasePath, "path to the sqlite database file")
	pf.Duration("fix-timeout", app.cfg.FixTimeout, "how long a clock-out waits for a position fix")
	pf.Float64("accuracy", app.cfg.DesiredAccuracy, "desired fix accuracy in meters, 0 for best available")
	pf.StringP("config", "c", "", "path to a JSON config file")

	root.AddCommand(newInCmd(app))
	root.AddCommand(newOutCmd(app))
	root.AddCommand(newStatusCmd(app))
	root.AddCommand(newListCmd(app))
	root.AddCommand(newShowCmd(app))
	root.AddCommand(newGeofenceCmd(app))
	root.AddCommand(newLogsCmd(app))
	root.AddCommand(newTrackCmd(app))
	root.AddCommand(newVersionCmd())
	return root
}
