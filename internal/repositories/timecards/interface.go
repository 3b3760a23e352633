package timecards

import (
	"context"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
)

// Repository describes persistence operations for Timecard rows.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Upsert inserts a new timecard or updates an existing one by ID,
	// preserving the storage-assigned rowid on update. On return the
	// timecard's SequenceID is populated.
	Upsert(ctx context.Context, tc *models.Timecard) error

	// GetByID returns a single timecard, common.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Timecard, error)

	// GetAll returns every timecard ordered by time in descending,
	// rowid breaking ties.
	GetAll(ctx context.Context) ([]models.Timecard, error)

	// GetOpen returns timecards with no time out, most recent first.
	// A healthy store has at most one such row.
	GetOpen(ctx context.Context) ([]models.Timecard, error)
}
