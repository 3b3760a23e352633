package tracking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/common"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/logging"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
)

// DefaultFixTimeout bounds the clock-out position wait, matching the
// native layer's single-shot query timeout.
const DefaultFixTimeout = 60 * time.Second

// Storage is the subset of the persistent store the timeclock depends on.
type Storage interface {
	SaveTimecard(ctx context.Context, tc *models.Timecard) error
	AppendEvent(ctx context.Context, e *models.TimecardEvent) error
	AppendLog(ctx context.Context, message string, data any, at time.Time) (*models.LogRecord, error)
	OpenTimecards(ctx context.Context) ([]models.Timecard, error)
}

// Timeclock is the authoritative timecard state machine. Every transition
// runs under one mutex, so clock-ins and clock-outs are totally ordered
// even though each spans several store calls plus a native tracking call.
//
// Transitions never roll back a successful persist when a later native
// call fails: the persisted row is the source of truth and a dangling
// tracker is recovered by Resume on the next start.
type Timeclock struct {
	mu      sync.Mutex
	storage Storage
	source  Source
	cache   *Cache
	log     logging.Logger

	fixTimeout      time.Duration
	desiredAccuracy float64

	// trackingID is the id of the timecard the native tracker was last
	// started for. Start/stop are guarded by timecard identity, not by
	// state alone, so re-entrant calls never reset a live handle.
	trackingID string
}

func NewTimeclock(storage Storage, source Source, cache *Cache, log logging.Logger, fixTimeout time.Duration, desiredAccuracy float64) *Timeclock {
	if fixTimeout <= 0 {
		fixTimeout = DefaultFixTimeout
	}
	return &Timeclock{
		storage:         storage,
		source:          source,
		cache:           cache,
		log:             log,
		fixTimeout:      fixTimeout,
		desiredAccuracy: desiredAccuracy,
	}
}

// Active returns the current active timecard, nil when clocked out.
func (t *Timeclock) Active() *models.Timecard {
	return t.cache.Active()
}

// Resume derives the initial state from storage: the open timecard, if
// any, becomes active and tracking is re-issued for it. More than one
// open row is a data-integrity anomaly; the most recently started wins
// and the anomaly is recorded in the durable log.
//
// A common.ErrTrackingUnavailable result accompanies a non-nil timecard
// when the state was restored but the tracker could not be started.
func (t *Timeclock) Resume(ctx context.Context) (*models.Timecard, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	open, err := t.storage.OpenTimecards(ctx)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, nil
	}

	active := open[0].Clone()
	if len(open) > 1 {
		t.log.Warn(ctx, "multiple open timecards found", "count", len(open), "kept", active.ID)
		data := map[string]any{"count": len(open), "kept": active.ID}
		if _, err := t.storage.AppendLog(ctx, "multiple open timecards found; keeping most recent", data, time.Now()); err != nil {
			t.log.Error(ctx, "failed to record integrity anomaly", "error", err)
		}
	}

	t.cache.Replace(active)
	if warn := t.startTracking(ctx, active); warn != nil {
		return active, warn
	}
	return active, nil
}

// ClockIn opens a new timecard. Calling while a timecard is already open
// is rejected with common.ErrInvalidTransition, leaving the open timecard
// untouched.
//
// Tracking start is best effort: on failure the timecard stays open and
// the returned error wraps common.ErrTrackingUnavailable alongside the
// non-nil timecard.
func (t *Timeclock) ClockIn(ctx context.Context) (*models.Timecard, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur := t.cache.Active(); cur != nil {
		return nil, fmt.Errorf("%w: timecard %s is already open", common.ErrInvalidTransition, cur.ID)
	}

	tc := &models.Timecard{ID: uuid.NewString(), TimeIn: time.Now()}
	if err := t.storage.SaveTimecard(ctx, tc); err != nil {
		return nil, err
	}

	if warn := t.startTracking(ctx, tc); warn != nil {
		return tc, warn
	}
	return tc, nil
}

// ClockOut closes the active timecard. It captures a final bounded-wait
// position fix (falling back to the current time when none is available),
// persists the time out, appends the terminal "Clock Out" event carrying
// the fix, stops the tracker and clears the active state.
//
// Calling while clocked out is rejected with common.ErrInvalidTransition.
func (t *Timeclock) ClockOut(ctx context.Context) (*models.Timecard, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	active := t.cache.Active()
	if active == nil {
		return nil, fmt.Errorf("%w: no open timecard", common.ErrInvalidTransition)
	}

	var warn error
	fix, err := t.source.CurrentFix(ctx, t.fixTimeout, t.desiredAccuracy)
	if err != nil {
		warn = t.trackingWarning(ctx, "clock-out position fix failed", err)
		fix = nil
	}

	out := time.Now()
	if fix != nil {
		out = fix.Time
	}
	if out.Before(active.TimeIn) {
		out = active.TimeIn
	}

	closed := active.Clone()
	closed.TimeOut = &out
	if err := t.storage.SaveTimecard(ctx, closed); err != nil {
		return nil, err
	}

	ev := &models.TimecardEvent{
		ID:         uuid.NewString(),
		TimecardID: closed.ID,
		Time:       out,
		Message:    MessageClockOut,
	}
	if fix != nil {
		ev.Latitude = &fix.Latitude
		ev.Longitude = &fix.Longitude
		ev.Accuracy = &fix.Accuracy
	}
	if err := t.storage.AppendEvent(ctx, ev); err != nil {
		// the timecard is already closed; the persisted row stands
		return closed, err
	}

	t.stopTracking(ctx, closed.ID, &warn)
	return closed, warn
}

// IngestExternalEvent attaches one inbound source update to the active
// timecard. When no timecard is open the update is dropped here (the
// pipeline has already written the diagnostic log record) so no row can
// reference a closed timecard. It reports whether an event was attached.
func (t *Timeclock) IngestExternalEvent(ctx context.Context, u Update) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	active := t.cache.Active()
	if active == nil {
		return false, nil
	}

	ev := &models.TimecardEvent{
		ID:         uuid.NewString(),
		TimecardID: active.ID,
		Latitude:   u.Latitude,
		Longitude:  u.Longitude,
		Accuracy:   u.Accuracy,
		Time:       u.Time,
		Message:    normalizeMessage(u.Message),
	}
	if err := t.storage.AppendEvent(ctx, ev); err != nil {
		return false, err
	}
	return true, nil
}

func (t *Timeclock) startTracking(ctx context.Context, tc *models.Timecard) error {
	if t.trackingID == tc.ID {
		return nil
	}
	if err := t.source.StartTracking(ctx, tc.TimeIn); err != nil {
		return t.trackingWarning(ctx, "start tracking failed", err)
	}
	t.trackingID = tc.ID
	return nil
}

func (t *Timeclock) stopTracking(ctx context.Context, id string, warn *error) {
	if t.trackingID != id {
		return
	}
	t.trackingID = ""
	if err := t.source.StopTracking(ctx); err != nil {
		*warn = t.trackingWarning(ctx, "stop tracking failed", err)
	}
}

// trackingWarning records a native-layer failure in both the process log
// and the durable log table, and returns it typed as
// common.ErrTrackingUnavailable for the caller to surface.
func (t *Timeclock) trackingWarning(ctx context.Context, msg string, err error) error {
	t.log.Warn(ctx, msg, "error", err)
	if _, logErr := t.storage.AppendLog(ctx, msg, map[string]any{"error": err.Error()}, time.Now()); logErr != nil {
		t.log.Error(ctx, "failed to append log record", "error", logErr)
	}
	return fmt.Errorf("%w: %s: %w", common.ErrTrackingUnavailable, msg, err)
}

func normalizeMessage(msg string) string {
	if msg == "" {
		return MessageLocationUpdate
	}
	return msg
}
