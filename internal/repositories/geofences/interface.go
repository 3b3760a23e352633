package geofences

import (
	"context"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
)

// Repository describes persistence operations for Geofence rows.
// Name is the primary key; a rename is a delete of the old name plus an
// insert of the new one, performed in one transaction by the caller.
type Repository interface {
	// Upsert inserts or replaces a geofence by name.
	Upsert(ctx context.Context, g *models.Geofence) error

	// DeleteByName removes a geofence, common.ErrNotFound when absent.
	DeleteByName(ctx context.Context, name string) error

	// GetAll lists geofences ordered by name.
	GetAll(ctx context.Context) ([]models.Geofence, error)
}
