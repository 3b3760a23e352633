package timecards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const selectColumns = `rowid, id, time_in, original_time_in, time_out, original_time_out, description`

// Upsert inserts or updates a timecard by id. ON CONFLICT keeps the existing
// rowid so the sequence ordinal stays stable across edits.
func (r *SQLiteRepository) Upsert(ctx context.Context, tc *models.Timecard) error {
	query := `INSERT INTO timecard (id, time_in, original_time_in, time_out, original_time_out, description)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET time_in = excluded.time_in,
				original_time_in = excluded.original_time_in,
				time_out = excluded.time_out,
				original_time_out = excluded.original_time_out,
				description = excluded.description
	`
	_, err := r.db.ExecContext(ctx, query,
		tc.ID, tc.TimeIn.Unix(), unixOrNil(tc.OriginalTimeIn), unixOrNil(tc.TimeOut), unixOrNil(tc.OriginalTimeOut), tc.Description)
	if err != nil {
		return fmt.Errorf("failed to upsert timecard: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `SELECT rowid FROM timecard WHERE id = ?`, tc.ID)
	if err := row.Scan(&tc.SequenceID); err != nil {
		return fmt.Errorf("failed to read timecard rowid: %w", err)
	}
	return nil
}

// GetByID returns a single timecard by its identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Timecard, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM timecard WHERE id = ?`, id)

	tc, err := scanTimecard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("timecard %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select timecard: %w", err)
	}
	return tc, nil
}

// GetAll lists all timecards, most recently started first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Timecard, error) {
	query := `SELECT ` + selectColumns + ` FROM timecard ORDER BY time_in DESC, rowid DESC`
	return r.list(ctx, query)
}

// GetOpen lists timecards with no time out, most recently started first.
func (r *SQLiteRepository) GetOpen(ctx context.Context) ([]models.Timecard, error) {
	query := `SELECT ` + selectColumns + ` FROM timecard WHERE time_out IS NULL ORDER BY time_in DESC, rowid DESC`
	return r.list(ctx, query)
}

func (r *SQLiteRepository) list(ctx context.Context, query string) ([]models.Timecard, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select timecards: %w", err)
	}
	defer rows.Close()

	var result []models.Timecard
	for rows.Next() {
		tc, err := scanTimecard(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTimecard(row scanner) (*models.Timecard, error) {
	var tc models.Timecard
	var timeIn int64
	var origIn, timeOut, origOut sql.NullInt64

	if err := row.Scan(&tc.SequenceID, &tc.ID, &timeIn, &origIn, &timeOut, &origOut, &tc.Description); err != nil {
		return nil, err
	}

	tc.TimeIn = time.Unix(timeIn, 0)
	tc.OriginalTimeIn = timeOrNil(origIn)
	tc.TimeOut = timeOrNil(timeOut)
	tc.OriginalTimeOut = timeOrNil(origOut)
	return &tc, nil
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeOrNil(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0)
	return &t
}
