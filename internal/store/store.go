// Package store owns the on-device relational database. The schema is
// bootstrapped lazily on first use, at most once, and every statement is
// serialized behind a single connection so the database is the system's
// sole source of mutual exclusion for durable state.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/bus"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/common"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/dbx"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/logging"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/repositories/geofences"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/repositories/logs"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/repositories/timecardevents"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/repositories/timecards"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/store/migrations"

	_ "modernc.org/sqlite"
)

// ActiveCache is the narrow view of the active-timecard cache the store
// needs for its upsert coupling. The timeclock owns the full cache; the
// store only replaces or clears it so the cached pointer can never
// silently diverge from storage.
type ActiveCache interface {
	// Replace sets the cached active timecard.
	Replace(tc *models.Timecard)

	// ClearIf clears the cache when the cached timecard has the given id.
	ClearIf(id string)
}

// Store provides an always-available, schema-guaranteed handle to durable
// storage. The first operation triggers the one-time bootstrap (open the
// database file, run the idempotent migrations); concurrent callers await
// the same bootstrap rather than re-running it.
type Store struct {
	dsn   string
	bus   *bus.Bus
	cache ActiveCache
	log   logging.Logger

	initOnce sync.Once
	initErr  error
	db       *sql.DB

	timecards timecards.Repository
	events    timecardevents.Repository
	geofences geofences.Repository
	logRepo   logs.Repository
}

// New returns a Store bound to the given sqlite DSN. The database is not
// opened until the first operation. bus and cache may be nil when no
// subscriber or timeclock is wired (read-only tooling).
func New(dsn string, b *bus.Bus, cache ActiveCache, log logging.Logger) *Store {
	return &Store{dsn: dsn, bus: b, cache: cache, log: log}
}

// bootstrap opens the database and applies migrations, at most once.
// A failed bootstrap is permanent: every subsequent operation reports
// ErrStorageUnavailable instead of retrying in an undefined state.
func (s *Store) bootstrap(ctx context.Context) error {
	s.initOnce.Do(func() {
		db, err := sql.Open("sqlite", s.dsn)
		if err != nil {
			s.initErr = err
			return
		}
		// One connection: the store serializes all access through a
		// single handle, and in-memory databases are per-connection.
		db.SetMaxOpenConns(1)

		goose.SetBaseFS(migrations.Migrations)
		if err := goose.SetDialect("sqlite3"); err != nil {
			s.initErr = err
			_ = db.Close()
			return
		}
		if err := goose.UpContext(ctx, db, "."); err != nil {
			s.initErr = err
			_ = db.Close()
			return
		}

		s.db = db
		s.timecards = timecards.NewSQLiteRepository(db)
		s.events = timecardevents.NewSQLiteRepository(db)
		s.geofences = geofences.NewSQLiteRepository(db)
		s.logRepo = logs.NewSQLiteRepository(db)
		s.log.Debug(ctx, "storage bootstrapped", "dsn", s.dsn)
	})

	if s.initErr != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, s.initErr)
	}
	return nil
}

// Execute runs one parameterized statement against the bootstrapped
// connection and returns its rows. Callers must never interpolate
// untrusted values into the statement text.
func (s *Store) Execute(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

// SaveTimecard upserts a timecard by id, then reconciles the active cache
// with storage: while the card is open the cache is re-derived from the
// open rows, and when it closes the matching cache entry is cleared.
// Subscribers are notified only after the write has committed.
func (s *Store) SaveTimecard(ctx context.Context, tc *models.Timecard) error {
	if err := s.bootstrap(ctx); err != nil {
		return err
	}

	if err := s.timecards.Upsert(ctx, tc); err != nil {
		return storageErr(err)
	}

	if tc.TimeOut == nil {
		open, err := s.timecards.GetOpen(ctx)
		if err != nil {
			return storageErr(err)
		}
		if s.cache != nil && len(open) > 0 {
			s.cache.Replace(&open[0])
		}
	} else if s.cache != nil {
		s.cache.ClearIf(tc.ID)
	}

	s.publish(bus.TimecardUpdated, tc.Clone())
	return nil
}

// AppendEvent inserts one timecard event and notifies subscribers after
// the write commits.
func (s *Store) AppendEvent(ctx context.Context, e *models.TimecardEvent) error {
	if err := s.bootstrap(ctx); err != nil {
		return err
	}
	if err := s.events.Append(ctx, e); err != nil {
		return storageErr(err)
	}
	s.publish(bus.TimecardEventAdded, e)
	return nil
}

// AppendLog inserts one durable log record. data, when non-nil, is
// serialized as JSON into the record's data column. Subscribers are
// notified after the write commits.
func (s *Store) AppendLog(ctx context.Context, message string, data any, at time.Time) (*models.LogRecord, error) {
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}

	rec := &models.LogRecord{Message: message, Time: at}
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode log data: %w", err)
		}
		rec.Data = string(encoded)
	}

	if err := s.logRepo.Append(ctx, rec); err != nil {
		return nil, storageErr(err)
	}
	s.publish(bus.LogAdded, rec)
	return rec, nil
}

// TimecardByID returns one timecard.
func (s *Store) TimecardByID(ctx context.Context, id string) (*models.Timecard, error) {
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	tc, err := s.timecards.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return tc, nil
}

// Timecards lists every timecard, most recently started first.
func (s *Store) Timecards(ctx context.Context) ([]models.Timecard, error) {
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	result, err := s.timecards.GetAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return result, nil
}

// OpenTimecards lists timecards with no time out, most recent first.
func (s *Store) OpenTimecards(ctx context.Context) ([]models.Timecard, error) {
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	result, err := s.timecards.GetOpen(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return result, nil
}

// EventsForTimecard lists the events attached to one timecard.
func (s *Store) EventsForTimecard(ctx context.Context, timecardID string, order timecardevents.Order) ([]models.TimecardEvent, error) {
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	result, err := s.events.GetByTimecard(ctx, timecardID, order)
	if err != nil {
		return nil, storageErr(err)
	}
	return result, nil
}

// Logs lists durable log records, newest first.
func (s *Store) Logs(ctx context.Context) ([]models.LogRecord, error) {
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	result, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return result, nil
}

// Geofences lists geofences ordered by name.
func (s *Store) Geofences(ctx context.Context) ([]models.Geofence, error) {
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	result, err := s.geofences.GetAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return result, nil
}

// SaveGeofence upserts a geofence. When originalName names a different
// existing geofence this is a rename: the old row is deleted and the new
// one inserted in a single transaction, since name is the primary key.
func (s *Store) SaveGeofence(ctx context.Context, g *models.Geofence, originalName string) error {
	if err := s.bootstrap(ctx); err != nil {
		return err
	}

	if originalName == "" || originalName == g.Name {
		if err := s.geofences.Upsert(ctx, g); err != nil {
			return storageErr(err)
		}
		return nil
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := geofences.NewSQLiteRepository(tx)
		if err := repo.DeleteByName(ctx, originalName); err != nil {
			return err
		}
		return repo.Upsert(ctx, g)
	})
	if err != nil {
		return storageErr(err)
	}
	return nil
}

// DeleteGeofence removes a geofence by name.
func (s *Store) DeleteGeofence(ctx context.Context, name string) error {
	if err := s.bootstrap(ctx); err != nil {
		return err
	}
	if err := s.geofences.DeleteByName(ctx, name); err != nil {
		return storageErr(err)
	}
	return nil
}

// Close closes the underlying database if it was ever opened.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) publish(kind bus.Kind, payload any) {
	if s.bus != nil {
		s.bus.Publish(kind, payload)
	}
}

// storageErr tags read/write failures with ErrStorage. ErrNotFound passes
// through untouched so callers can distinguish a missing row from an I/O
// failure.
func storageErr(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}
