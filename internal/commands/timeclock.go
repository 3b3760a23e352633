package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/common"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/tracking"
)

func newInCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "in",
		Short: "Clock in and open a new timecard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := app.clock.Resume(ctx); err != nil && !errors.Is(err, common.ErrTrackingUnavailable) {
				return err
			}

			tc, err := app.clock.ClockIn(ctx)
			if err != nil && !errors.Is(err, common.ErrTrackingUnavailable) {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clocked in at %s (timecard %s)\n", tc.TimeIn.Format(time.RFC3339), tc.ID)
			return nil
		},
	}
}

func newOutCmd(app *App) *cobra.Command {
	var lat, lng, accuracy float64

	cmd := &cobra.Command{
		Use:   "out",
		Short: "Clock out and close the active timecard",
		Long: `Clock out and close the active timecard. When --lat and --lng are
given they stand in for the final position fix; otherwise the close
time falls back to the current clock.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := app.clock.Resume(ctx); err != nil && !errors.Is(err, common.ErrTrackingUnavailable) {
				return err
			}

			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				u := tracking.Update{Latitude: &lat, Longitude: &lng, Time: time.Now()}
				if cmd.Flags().Changed("accuracy-m") {
					u.Accuracy = &accuracy
				}
				if err := app.source.Emit(u); err != nil {
					return err
				}
			}

			tc, err := app.clock.ClockOut(ctx)
			if err != nil && !errors.Is(err, common.ErrTrackingUnavailable) {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clocked out at %s (worked %s)\n",
				tc.TimeOut.Format(time.RFC3339), tc.TimeOut.Sub(tc.TimeIn).Round(time.Second))
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the clock-out position")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude of the clock-out position")
	cmd.Flags().Float64Var(&accuracy, "accuracy-m", 0, "accuracy of the clock-out position in meters")
	return cmd
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a timecard is open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			open, err := app.store.OpenTimecards(ctx)
			if err != nil {
				return err
			}
			if len(open) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Clocked out")
				return nil
			}
			tc := open[0]
			fmt.Fprintf(cmd.OutOrStdout(), "Clocked in since %s (%s elapsed, timecard %s)\n",
				tc.TimeIn.Format(time.RFC3339), time.Since(tc.TimeIn).Round(time.Second), tc.ID)
			return nil
		},
	}
}
