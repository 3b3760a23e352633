package logs

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

// Append inserts one log record.
func (r *SQLiteRepository) Append(ctx context.Context, rec *models.LogRecord) error {
	query := `INSERT INTO log (message, data, time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, rec.Message, stringOrNil(rec.Data), rec.Time.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert log record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read log rowid: %w", err)
	}
	rec.SequenceID = id
	return nil
}

// GetAll lists log records newest first, rowid breaking ties.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.LogRecord, error) {
	query := `SELECT rowid, message, data, time FROM log ORDER BY time DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select log records: %w", err)
	}
	defer rows.Close()

	var result []models.LogRecord
	for rows.Next() {
		var rec models.LogRecord
		var data sql.NullString
		var at int64
		if err := rows.Scan(&rec.SequenceID, &rec.Message, &data, &at); err != nil {
			return nil, err
		}
		rec.Data = data.String
		rec.Time = time.Unix(at, 0)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
