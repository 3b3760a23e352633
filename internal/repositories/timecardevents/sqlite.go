package timecardevents

import (
	"context"
	"database/sql"
	"fmt"
	"time"

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

// Append inserts one event row.
func (r *SQLiteRepository) Append(ctx context.Context, e *models.TimecardEvent) error {
	query := `INSERT INTO timecard_event (id, timecard_id, latitude, longitude, accuracy, time, message)
			VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TimecardID, floatOrNil(e.Latitude), floatOrNil(e.Longitude), floatOrNil(e.Accuracy), e.Time.Unix(), e.Message)
	if err != nil {
		return fmt.Errorf("failed to insert timecard event: %w", err)
	}
	return nil
}

// GetByTimecard lists events for one timecard ordered by capture time,
// rowid breaking ties so arrival order is preserved within a second.
func (r *SQLiteRepository) GetByTimecard(ctx context.Context, timecardID string, order Order) ([]models.TimecardEvent, error) {
	dir := "DESC"
	if order == Ascending {
		dir = "ASC"
	}
	query := fmt.Sprintf(`SELECT id, timecard_id, latitude, longitude, accuracy, time, message
			FROM timecard_event WHERE timecard_id = ? ORDER BY time %s, rowid %s`, dir, dir)

	rows, err := r.db.QueryContext(ctx, query, timecardID)
	if err != nil {
		return nil, fmt.Errorf("failed to select timecard events: %w", err)
	}
	defer rows.Close()

	var result []models.TimecardEvent
	for rows.Next() {
		var e models.TimecardEvent
		var lat, lng, acc sql.NullFloat64
		var at int64
		if err := rows.Scan(&e.ID, &e.TimecardID, &lat, &lng, &acc, &at, &e.Message); err != nil {
			return nil, err
		}
		e.Latitude = floatPtr(lat)
		e.Longitude = floatPtr(lng)
		e.Accuracy = floatPtr(acc)
		e.Time = time.Unix(at, 0)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
