// Package tracking holds the timecard lifecycle: the timeclock state
// machine that guarantees at most one open timecard, the active-timecard
// cache, and the pipeline that ingests the native location stream.
package tracking

import (
	"context"
	"time"
)

// Standard event messages. The native layer sends an empty message for
// plain location fixes; it is normalized to MessageLocationUpdate before
// anything is persisted.
const (
	MessageLocationUpdate = "location update"
	MessageClockOut       = "Clock Out"
)

// Fix is a single position sample returned by a one-shot query.
type Fix struct {
	Latitude  float64
	Longitude float64
	// Accuracy is a horizontal accuracy radius in meters.
	Accuracy float64
	Time     time.Time
}

// Update is one inbound event from the location/geofence source.
// Latitude/Longitude/Accuracy are nil for non-positional events such as
// "Location has been disabled".
type Update struct {
	Latitude  *float64
	Longitude *float64
	Accuracy  *float64
	Time      time.Time
	Message   string
}

// Source is the contract the native location/geofence service must
// satisfy. The core never implements the hardware side; it only starts,
// stops and consumes the stream.
type Source interface {
	// StartTracking begins background tracking anchored at the given
	// clock-in instant.
	StartTracking(ctx context.Context, anchor time.Time) error

	// StopTracking ends background tracking.
	StopTracking(ctx context.Context) error

	// CurrentFix performs a one-shot position query, waiting at most
	// timeout for a fix of at least the desired accuracy. It must not
	// block past the timeout; common.ErrNoFix reports an expired wait.
	CurrentFix(ctx context.Context, timeout time.Duration, desiredAccuracy float64) (*Fix, error)

	// Events returns the inbound event stream. Updates are delivered in
	// arrival order; the channel is closed when the source shuts down.
	Events() <-chan Update
}
