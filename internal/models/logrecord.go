package models

import "time"

// LogRecord is an append-only diagnostic row. The core never mutates or
// deletes log records; the UI reads them back ordered by Time descending.
type LogRecord struct {
	// Message is the human-readable description.
	Message string

	// Data is an optional structured payload serialized as JSON text,
	// empty when the record carries no payload.
	Data string

	Time time.Time

	// SequenceID is the storage-assigned rowid.
	SequenceID int64
}
