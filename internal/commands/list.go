package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/repositories/timecardevents"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List timecards, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cards, err := app.store.Timecards(cmd.Context())
			if err != nil {
				return err
			}
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No timecards yet. Use 'geotime in' to clock in.")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-36s %-20s %-20s %-10s %s\n", "ID", "IN", "OUT", "DURATION", "DESCRIPTION")
			fmt.Fprintln(out, strings.Repeat("-", 100))
			for _, tc := range cards {
				timeOut := "open"
				duration := time.Since(tc.TimeIn).Round(time.Second).String()
				if tc.TimeOut != nil {
					timeOut = tc.TimeOut.Format("2006-01-02 15:04:05")
					duration = tc.TimeOut.Sub(tc.TimeIn).Round(time.Second).String()
				}
				fmt.Fprintf(out, "%-36s %-20s %-20s %-10s %s\n",
					tc.ID, tc.TimeIn.Format("2006-01-02 15:04:05"), timeOut, duration, tc.Description)
			}
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [timecard-id]",
		Short: "Show one timecard and its location events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tc, err := app.store.TimecardByID(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Timecard %s\n", tc.ID)
			fmt.Fprintf(out, "  In:  %s\n", tc.TimeIn.Format(time.RFC3339))
			if tc.TimeOut != nil {
				fmt.Fprintf(out, "  Out: %s (%s)\n", tc.TimeOut.Format(time.RFC3339), tc.TimeOut.Sub(tc.TimeIn).Round(time.Second))
			} else {
				fmt.Fprintln(out, "  Out: open")
			}
			if tc.Description != "" {
				fmt.Fprintf(out, "  Description: %s\n", tc.Description)
			}

			events, err := app.store.EventsForTimecard(ctx, tc.ID, timecardevents.Ascending)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "  No location events")
				return nil
			}

			fmt.Fprintf(out, "\n%-20s %-12s %-12s %-10s %s\n", "TIME", "LATITUDE", "LONGITUDE", "ACCURACY", "MESSAGE")
			fmt.Fprintln(out, strings.Repeat("-", 80))
			for _, ev := range events {
				lat, lng, acc := "-", "-", "-"
				if ev.Latitude != nil {
					lat = fmt.Sprintf("%.6f", *ev.Latitude)
				}
				if ev.Longitude != nil {
					lng = fmt.Sprintf("%.6f", *ev.Longitude)
				}
				if ev.Accuracy != nil {
					acc = fmt.Sprintf("%.1fm", *ev.Accuracy)
				}
				fmt.Fprintf(out, "%-20s %-12s %-12s %-10s %s\n",
					ev.Time.Format("2006-01-02 15:04:05"), lat, lng, acc, ev.Message)
			}
			return nil
		},
	}
}

func newLogsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Show the durable diagnostic log, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recs, err := app.store.Logs(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "No log records")
				return nil
			}
			for _, rec := range recs {
				line := fmt.Sprintf("%s  %s", rec.Time.Format("2006-01-02 15:04:05"), rec.Message)
				if rec.Data != "" {
					line += "  " + rec.Data
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
