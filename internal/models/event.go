package models

import "time"

// TimecardEvent is a timestamped, optionally-positioned record attached to
// a timecard: a location sample, a geofence crossing, the clock-out fix or
// a tracker error. Latitude/Longitude/Accuracy are nil for non-positional
// events (for example "Location has been disabled").
type TimecardEvent struct {
	ID         string
	TimecardID string

	Latitude  *float64
	Longitude *float64
	// Accuracy is a horizontal accuracy radius in meters.
	Accuracy *float64

	// Time is the instant of capture. Events are ordered by Time descending
	// for display and ascending for path reconstruction.
	Time time.Time

	// Message classifies the event ("location update", "gps disabled",
	// "Clock Out", ...).
	Message string
}

// HasCoordinate reports whether the event carries a position.
func (e *TimecardEvent) HasCoordinate() bool {
	return e.Latitude != nil && e.Longitude != nil
}
