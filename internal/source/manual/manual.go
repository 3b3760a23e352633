// Package manual provides a Source fed by hand. The real mobile app gets
// its stream from the device's location services; on the command line the
// operator (or a test) plays that role by emitting updates explicitly.
package manual

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/common"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/tracking"
)

const eventBuffer = 64

// Source implements tracking.Source with an in-process feed.
type Source struct {
	mu     sync.Mutex
	active bool
	last   *tracking.Fix
	events chan tracking.Update
	closed bool
}

func New() *Source {
	return &Source{events: make(chan tracking.Update, eventBuffer)}
}

func (s *Source) StartTracking(_ context.Context, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	return nil
}

func (s *Source) StopTracking(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	return nil
}

// CurrentFix answers from the most recent positional emission. There is
// no hardware to wait on, so instead of blocking for the timeout it fails
// fast with common.ErrNoFix when nothing has been emitted yet.
func (s *Source) CurrentFix(_ context.Context, _ time.Duration, _ float64) (*tracking.Fix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, common.ErrNoFix
	}
	fix := *s.last
	return &fix, nil
}

// Tracking reports whether background tracking is currently started.
func (s *Source) Tracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Source) Events() <-chan tracking.Update {
	return s.events
}

// Emit feeds one update into the stream. Positional updates also become
// the answer to subsequent CurrentFix calls.
func (s *Source) Emit(u tracking.Update) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("source is closed")
	}
	if u.Latitude != nil && u.Longitude != nil {
		fix := tracking.Fix{Latitude: *u.Latitude, Longitude: *u.Longitude, Time: u.Time}
		if u.Accuracy != nil {
			fix.Accuracy = *u.Accuracy
		}
		s.last = &fix
	}
	s.mu.Unlock()

	s.events <- u
	return nil
}

// Close ends the stream; the pipeline's Run returns once it drains.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
