package timeclock

import "errors"

var (
	// Caller lacks venue-manager rights, or the chef is not active staff.
	ErrNotAuthorized = errors.New("not authorized for venue")

	// Token string not found.
	ErrInvalidToken = errors.New("invalid clock token")

	ErrTokenExpired     = errors.New("clock token expired")
	ErrTokenAlreadyUsed = errors.New("clock token already used")

	// Status change not in the allowed transition set.
	ErrInvalidTransition = errors.New("invalid shift status transition")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrNotFound = errors.New("not found")

	// A concurrent scan already mutated the same (chef, venue) shift.
	ErrShiftConflict = errors.New("conflicting concurrent scan")
)
