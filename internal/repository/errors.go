package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("repository: not found")
	// ErrLimitReached indicates a conditional insert was rejected because the
	// owner already holds the maximum number of records.
	ErrLimitReached = errors.New("repository: owner limit reached")
	// ErrPeriodInUse indicates a period cannot be deleted while tasks still
	// reference it.
	ErrPeriodInUse = errors.New("repository: period has tasks")
)
