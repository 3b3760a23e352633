// Package common defines shared sentinel errors used across the storage,
// tracking and CLI layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage errors.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorage            = errors.New("storage error")
	ErrNotFound           = errors.New("not found")

	// Timeclock transition errors.
	ErrInvalidTransition = errors.New("invalid transition")

	// Tracking errors. Non-fatal to the transition that reports them:
	// a clock-in or clock-out that returns one of these alongside a
	// timecard still completed its persistence step.
	ErrTrackingUnavailable = errors.New("tracking unavailable")
	ErrNoFix               = errors.New("no position fix available")
)
