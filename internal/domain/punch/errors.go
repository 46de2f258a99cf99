package punch

import "errors"

// Punch domain errors
var (
	// Reconciliation errors. ErrNotCheckedIn is a precondition failure: it
	// depends on stored state, not on the request shape, and nothing is
	// mutated when it fires.
	ErrNotCheckedIn  = errors.New("not checked in yet, cannot record check-out")
	ErrPunchNotFound = errors.New("punch record not found")

	// Face identification errors
	ErrUnknownFace = errors.New("face not recognized, nothing stored")
)
