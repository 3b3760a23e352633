// Package models defines the data model persisted by the on-device store:
// timecards, timecard events, geofences and log records.
package models

import "time"

// Timecard is one clock-in-to-clock-out work period.
//
// Times are persisted at second resolution (unix seconds in the database),
// matching the schema. A Timecard with a nil TimeOut is open; at most one
// open Timecard exists in storage at any time.
type Timecard struct {
	// ID is an opaque unique identifier, immutable once created.
	ID string

	// TimeIn is the instant the timecard began.
	TimeIn time.Time

	// TimeOut is the instant the timecard ended, nil while open.
	// Set exactly once, never before TimeIn.
	TimeOut *time.Time

	// OriginalTimeIn and OriginalTimeOut capture pre-correction values
	// when a timecard is edited. Never overwritten once set.
	OriginalTimeIn  *time.Time
	OriginalTimeOut *time.Time

	// Description is a free-text annotation.
	Description string

	// SequenceID is the storage-assigned rowid, used for stable ordering
	// when two timecards share a TimeIn. Zero until first persisted.
	SequenceID int64
}

// Open reports whether the timecard has not been clocked out yet.
func (t *Timecard) Open() bool {
	return t.TimeOut == nil
}

// Clone returns a shallow copy with its own pointer fields, so callers can
// mutate the copy without aliasing the original's timestamps.
func (t *Timecard) Clone() *Timecard {
	c := *t
	c.TimeOut = cloneTime(t.TimeOut)
	c.OriginalTimeIn = cloneTime(t.OriginalTimeIn)
	c.OriginalTimeOut = cloneTime(t.OriginalTimeOut)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
