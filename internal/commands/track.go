package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/bus"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/common"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/tracking"
)

func newTrackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Run the location pipeline, reading updates from stdin",
		Long: `Run the location event pipeline until stdin closes or the process is
interrupted. Each input line is one update:

  <lat> <lng> [accuracy]   a position fix
  <message text>           a non-positional event, e.g. "Location has been disabled"

Updates are attached to the active timecard and always land in the
diagnostic log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			active, err := app.clock.Resume(ctx)
			if err != nil && !errors.Is(err, common.ErrTrackingUnavailable) {
				return err
			}
			if err != nil {
				fmt.Fprintf(out, "warning: %v\n", err)
			}
			if active == nil {
				fmt.Fprintln(out, "No open timecard; updates will be logged but not attached")
			} else {
				fmt.Fprintf(out, "Tracking against timecard %s\n", active.ID)
			}

			sub := app.bus.Subscribe(bus.TimecardEventAdded, func(payload any) {
				ev, ok := payload.(*models.TimecardEvent)
				if !ok {
					return
				}
				fmt.Fprintf(out, "attached %s to timecard %s\n", ev.Message, ev.TimecardID)
			})
			defer sub.Cancel()

			pipeline := tracking.NewPipeline(app.source, app.clock, app.store, app.log)
			done := make(chan error, 1)
			go func() { done <- pipeline.Run(ctx) }()

			go func() {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					line := strings.TrimSpace(scanner.Text())
					if line == "" {
						continue
					}
					if err := app.source.Emit(parseUpdate(line)); err != nil {
						return
					}
				}
				app.source.Close()
			}()

			if err := <-done; err != nil && !errors.Is(err, ctx.Err()) {
				return err
			}
			return nil
		},
	}
}

// parseUpdate turns one stdin line into an update. Lines starting with a
// number are position fixes; anything else is a message-only event.
func parseUpdate(line string) tracking.Update {
	u := tracking.Update{Time: time.Now()}

	fields := strings.Fields(line)
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || len(fields) < 2 {
		u.Message = line
		return u
	}
	lng, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		u.Message = line
		return u
	}

	u.Latitude = &lat
	u.Longitude = &lng
	if len(fields) > 2 {
		if acc, err := strconv.ParseFloat(fields[2], 64); err == nil {
			u.Accuracy = &acc
		}
	}
	return u
}
