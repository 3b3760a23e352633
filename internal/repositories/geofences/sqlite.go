package geofences

import (
	"context"
	"fmt"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/common"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/dbx"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts or replaces a geofence by name.
func (r *SQLiteRepository) Upsert(ctx context.Context, g *models.Geofence) error {
	query := `INSERT INTO geofence (name, latitude, longitude, radius)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET latitude = excluded.latitude,
				longitude = excluded.longitude,
				radius = excluded.radius
	`
	_, err := r.db.ExecContext(ctx, query, g.Name, g.Latitude, g.Longitude, g.Radius)
	if err != nil {
		return fmt.Errorf("failed to upsert geofence: %w", err)
	}
	return nil
}

// DeleteByName removes a geofence. It expects exactly one row to be affected.
func (r *SQLiteRepository) DeleteByName(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM geofence WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete geofence: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("geofence %q: %w", name, common.ErrNotFound)
	}
	return nil
}

// GetAll lists geofences ordered by name.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Geofence, error) {
	query := `SELECT name, latitude, longitude, radius FROM geofence ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select geofences: %w", err)
	}
	defer rows.Close()

	var result []models.Geofence
	for rows.Next() {
		var g models.Geofence
		if err := rows.Scan(&g.Name, &g.Latitude, &g.Longitude, &g.Radius); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
