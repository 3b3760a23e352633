package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/geo"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
)

func newGeofenceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "geofence",
		Aliases: []string{"gf"},
		Short:   "Manage named geofences",
	}
	cmd.AddCommand(newGeofenceAddCmd(app))
	cmd.AddCommand(newGeofenceRemoveCmd(app))
	cmd.AddCommand(newGeofenceRenameCmd(app))
	cmd.AddCommand(newGeofenceListCmd(app))
	return cmd
}

func newGeofenceAddCmd(app *App) *cobra.Command {
	var lat, lng, radius float64

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create or update a geofence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := &models.Geofence{Name: args[0], Latitude: lat, Longitude: lng, Radius: radius}
			if err := app.store.SaveGeofence(cmd.Context(), g, ""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved geofence %q (%.6f, %.6f, r=%.0fm)\n", g.Name, g.Latitude, g.Longitude, g.Radius)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the geofence center")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude of the geofence center")
	cmd.Flags().Float64Var(&radius, "radius", 100, "geofence radius in meters")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func newGeofenceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove"},
		Short:   "Delete a geofence",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store.DeleteGeofence(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted geofence %q\n", args[0])
			return nil
		},
	}
}

func newGeofenceRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv [old-name] [new-name]",
		Short: "Rename a geofence, keeping its center and radius",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fences, err := app.store.Geofences(ctx)
			if err != nil {
				return err
			}
			for _, g := range fences {
				if g.Name != args[0] {
					continue
				}
				renamed := g
				renamed.Name = args[1]
				if err := app.store.SaveGeofence(ctx, &renamed, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed geofence %q to %q\n", args[0], args[1])
				return nil
			}
			return fmt.Errorf("geofence %q not found", args[0])
		},
	}
}

func newGeofenceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List geofences with their map bounding deltas",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fences, err := app.store.Geofences(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(fences) == 0 {
				fmt.Fprintln(out, "No geofences")
				return nil
			}

			fmt.Fprintf(out, "%-20s %-12s %-12s %-8s %-12s %s\n", "NAME", "LATITUDE", "LONGITUDE", "RADIUS", "LAT DELTA", "LNG DELTA")
			fmt.Fprintln(out, strings.Repeat("-", 80))
			for _, g := range fences {
				latDelta, lngDelta := geo.BoundingDeltas(geo.Point{Latitude: g.Latitude, Longitude: g.Longitude}, g.Radius)
				fmt.Fprintf(out, "%-20s %-12.6f %-12.6f %-8.0f %-12.6f %.6f\n",
					g.Name, g.Latitude, g.Longitude, g.Radius, latDelta, lngDelta)
			}
			return nil
		},
	}
}
