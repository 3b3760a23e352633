package timecardevents

import (
	"context"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
)

// Order selects the chronological direction of an event listing.
type Order int

const (
	// Descending is the display order (newest first).
	Descending Order = iota
	// Ascending is the path-reconstruction order (oldest first).
	Ascending
)

// Repository describes append and query operations for TimecardEvent rows.
type Repository interface {
	// Append inserts one event. Events are never updated or deleted.
	Append(ctx context.Context, e *models.TimecardEvent) error

	// GetByTimecard returns every event attached to the given timecard
	// ordered by capture time.
	GetByTimecard(ctx context.Context, timecardID string, order Order) ([]models.TimecardEvent, error)
}
