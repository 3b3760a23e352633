package logs

import (
	"context"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
)

// Repository describes the append-only durable diagnostic log. Rows are
// never mutated or deleted.
type Repository interface {
	// Append inserts one log record; on return the record's SequenceID
	// is populated.
	Append(ctx context.Context, rec *models.LogRecord) error

	// GetAll lists log records newest first.
	GetAll(ctx context.Context) ([]models.LogRecord, error)
}
