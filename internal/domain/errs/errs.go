// Package errs holds the sentinel errors shared by services, repositories
// and controllers. Controllers translate them to HTTP statuses with errors.Is.
package errs

import "errors"

var (
	// ErrValidation marks a malformed request. No side effects happened.
	ErrValidation = errors.New("validation error")

	// ErrInsufficientCapacity means the per-file or aggregate storage limit
	// would be exceeded.
	ErrInsufficientCapacity = errors.New("insufficient storage capacity")

	// ErrUpstream means object storage or the record store failed after the
	// retry policy was exhausted.
	ErrUpstream = errors.New("upstream storage failure")

	// ErrNotFound means the key or id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrFileExpired means the record exists but its expiry predicate holds.
	ErrFileExpired = errors.New("file is expired")

	// ErrNoConfig means the singleton service config row is absent
	// (the instance has not been onboarded yet).
	ErrNoConfig = errors.New("service config not found")

	// ErrSingletonViolation is returned on an attempt to create a second
	// config row or to delete the existing one.
	ErrSingletonViolation = errors.New("config singleton violation")
)
