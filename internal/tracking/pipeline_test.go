package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/repositories/timecardevents"
)

func TestPipeline_LogsButDropsEventsWhileClockedOut(t *testing.T) {
	clock, st, _, src := newFixture(t)
	p := NewPipeline(src, clock, st, discardLogger())
	ctx := context.Background()

	src.events <- Update{Latitude: f(1), Longitude: f(2), Time: time.Unix(1700000000, 0)}
	src.events <- Update{Time: time.Unix(1700000010, 0), Message: "Location has been disabled"}
	close(src.events)

	require.NoError(t, p.Run(ctx))

	// the diagnostic trail is complete
	logs, err := st.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// but no event row references a nonexistent timecard
	rows, err := st.Execute(ctx, `SELECT COUNT(*) FROM timecard_event`)
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, rows.Next())
	var count int
	require.NoError(t, rows.Scan(&count))
	assert.Zero(t, count)
}

func TestPipeline_AttachesEventsInArrivalOrder(t *testing.T) {
	clock, st, _, src := newFixture(t)
	p := NewPipeline(src, clock, st, discardLogger())
	ctx := context.Background()

	tc, err := clock.ClockIn(ctx)
	require.NoError(t, err)

	base := time.Now().Truncate(time.Second)
	src.events <- Update{Latitude: f(1), Longitude: f(2), Accuracy: f(5), Time: base}
	src.events <- Update{Latitude: f(1.1), Longitude: f(2.1), Accuracy: f(5), Time: base.Add(10 * time.Second)}
	src.events <- Update{Time: base.Add(20 * time.Second), Message: "Lost location permission."}
	close(src.events)

	require.NoError(t, p.Run(ctx))

	events, err := st.EventsForTimecard(ctx, tc.ID, timecardevents.Ascending)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, MessageLocationUpdate, events[0].Message)
	assert.Equal(t, 1.0, *events[0].Latitude)
	assert.Equal(t, 1.1, *events[1].Latitude)
	assert.Equal(t, "Lost location permission.", events[2].Message)
	assert.False(t, events[2].HasCoordinate())

	// every update also left a durable log record
	logs, err := st.Logs(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestPipeline_RunStopsOnContextCancel(t *testing.T) {
	clock, st, _, src := newFixture(t)
	p := NewPipeline(src, clock, st, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Run(ctx), context.Canceled)
}
